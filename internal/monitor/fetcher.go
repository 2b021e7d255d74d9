package monitor

import (
	"bytes"
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"vsphere-events-cli/internal/metrics"
	"vsphere-events-cli/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnexpectedProperty is returned when latestPage does not hold an
// ArrayOfEvent.
var ErrUnexpectedProperty = errors.New("latestPage is not an ArrayOfEvent")

// PropertyFetcher retrieves properties through one property collector and
// reports a collector's latest page.
type PropertyFetcher struct {
	pc            PropertyCollector
	propCollector models.ManagedObjectReference

	MaxPages int
	Format   Format
	Out      io.Writer

	log     *logrus.Entry
	metrics *metrics.Recorder
}

func NewPropertyFetcher(pc PropertyCollector, propCollector models.ManagedObjectReference) *PropertyFetcher {
	return &PropertyFetcher{
		pc:            pc,
		propCollector: propCollector,
		MaxPages:      DefaultMaxPages,
		Format:        FormatPlain,
		Out:           os.Stdout,
		log:           logrus.NewEntry(logrus.StandardLogger()),
	}
}

// RetrieveAll returns the objects of every page, in page order. On any
// failure the pages gathered so far are dropped and only the error is
// returned.
func (f *PropertyFetcher) RetrieveAll(ctx context.Context, specs ...models.PropertyFilterSpec) ([]models.ObjectContent, error) {
	pager := NewPager(f.pc, f.propCollector, specs, models.RetrieveOptions{}, f.MaxPages).WithLogger(f.log)

	var objects []models.ObjectContent
	for pager.Next(ctx) {
		f.metrics.ObservePage()
		objects = append(objects, pager.Page()...)
	}
	if err := pager.Err(); err != nil {
		return nil, err
	}
	return objects, nil
}

// Monitor retrieves spec and prints the events found in the latest page of
// the first object returned, or a notice when nothing was reported. A
// latestPage the server could not read is returned as its remote fault.
func (f *PropertyFetcher) Monitor(ctx context.Context, spec models.PropertyFilterSpec) error {
	objects, err := f.RetrieveAll(ctx, spec)
	if err != nil {
		return err
	}

	if missing, ok := MissingLatestPage(objects); ok {
		return f.pc.PropertyFault(missing)
	}

	events, found, err := LatestPageEvents(objects)
	if err != nil {
		return err
	}
	if !found {
		f.log.Debug("No latest page reported")
		return WriteNoEvents(f.Out, f.Format)
	}

	for _, e := range events {
		f.metrics.ObserveEvent(e.Kind)
	}
	f.log.WithField("events", len(events)).Debug("Latest page retrieved")

	return WriteEvents(f.Out, f.Format, events)
}

// MissingLatestPage returns the missingSet entry of the first object content
// when the server could not read its latestPage property.
func MissingLatestPage(objects []models.ObjectContent) (models.MissingProperty, bool) {
	if len(objects) == 0 {
		return models.MissingProperty{}, false
	}
	if _, ok := objects[0].Property(models.PropertyLatestPage); ok {
		return models.MissingProperty{}, false
	}
	for _, m := range objects[0].MissingSet {
		if m.Path == models.PropertyLatestPage {
			return m, true
		}
	}
	return models.MissingProperty{}, false
}

// LatestPageEvents decodes the latestPage property of the first object
// content. found is false when there are no objects, the property was not
// reported or its value is null; an empty page is found with no events.
func LatestPageEvents(objects []models.ObjectContent) (events []models.Event, found bool, err error) {
	if len(objects) == 0 {
		return nil, false, nil
	}

	prop, ok := objects[0].Property(models.PropertyLatestPage)
	if !ok {
		return nil, false, nil
	}
	raw := bytes.TrimSpace(prop.Val)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false, nil
	}

	var page models.ArrayOfEvent
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, errors.Wrapf(ErrUnexpectedProperty, "decode: %v", err)
	}
	if page.TypeName != "" && page.TypeName != "ArrayOfEvent" {
		return nil, false, errors.Wrapf(ErrUnexpectedProperty, "got %s", page.TypeName)
	}
	return page.Events, true, nil
}
