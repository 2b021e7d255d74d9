package monitor

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"vsphere-events-cli/internal/metrics"
	"vsphere-events-cli/pkg/models"
)

// ErrNoServiceContent is returned when the session cannot supply the event
// manager reference.
var ErrNoServiceContent = errors.New("session has no service content with an event manager")

// State is a step of a monitor run. Runs move strictly forward.
type State int

const (
	StateStart State = iota
	StateManagerResolved
	StateCollectorCreated
	StateSpecBuilt
	StatePolled
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateManagerResolved:
		return "ManagerResolved"
	case StateCollectorCreated:
		return "CollectorCreated"
	case StateSpecBuilt:
		return "SpecBuilt"
	case StatePolled:
		return "Polled"
	case StateDone:
		return "Done"
	}
	return "Unknown"
}

type Options struct {
	MaxPages int
	Format   Format
	Out      io.Writer
	Logger   *logrus.Entry
	Metrics  *metrics.Recorder
}

// Monitor creates one event history collector and polls it once.
type Monitor struct {
	session    Session
	collectors *CollectorManager
	opts       Options
	log        *logrus.Entry

	state     State
	collector models.ManagedObjectReference
}

func New(session Session, opts Options) *Monitor {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Monitor{
		session:    session,
		collectors: NewCollectorManager(session),
		opts:       opts,
		log:        log,
	}
}

// State returns how far the last Run got.
func (m *Monitor) State() State {
	return m.state
}

// Collector returns the collector created by Run, zero before that.
func (m *Monitor) Collector() models.ManagedObjectReference {
	return m.collector
}

// Run resolves the event manager, creates a collector with the default
// filter, builds the latestPage spec and reports the page. Remote faults
// are returned unchanged.
func (m *Monitor) Run(ctx context.Context) error {
	m.state = StateStart

	content := m.session.Content()
	if content == nil || content.EventManager == nil {
		return ErrNoServiceContent
	}
	eventManager := *content.EventManager
	m.advance(StateManagerResolved, logrus.Fields{"eventManager": eventManager.String()})

	collector, err := m.collectors.CreateCollector(ctx, eventManager, models.NewEventFilterSpec())
	if err != nil {
		return err
	}
	m.collector = collector
	m.advance(StateCollectorCreated, logrus.Fields{"collector": collector.String()})

	spec := BuildLatestPageFilterSpec(collector)
	m.advance(StateSpecBuilt, nil)

	fetcher := m.fetcher(content.PropertyCollector)
	if err := fetcher.Monitor(ctx, spec); err != nil {
		return err
	}
	m.advance(StatePolled, nil)
	m.advance(StateDone, nil)
	return nil
}

func (m *Monitor) fetcher(propCollector models.ManagedObjectReference) *PropertyFetcher {
	f := NewPropertyFetcher(m.session, propCollector)
	if m.opts.MaxPages > 0 {
		f.MaxPages = m.opts.MaxPages
	}
	f.Format = m.opts.Format
	if m.opts.Out != nil {
		f.Out = m.opts.Out
	}
	f.log = m.log
	f.metrics = m.opts.Metrics
	return f
}

func (m *Monitor) advance(next State, fields logrus.Fields) {
	m.state = next
	m.log.WithFields(fields).WithField("state", next.String()).Debug("Monitor state")
}
