package monitor

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"vsphere-events-cli/pkg/models"
)

type Format int

const (
	// FormatPlain prints one "Event: <kind>" line per event.
	FormatPlain Format = iota
	// FormatWide prints a TIME/TYPE/USER/MESSAGE table.
	FormatWide
	// FormatJSON prints the events as an indented JSON array.
	FormatJSON
)

const (
	headerLine = "Events In the latestPage are: "
	emptyLine  = "No Events retrieved!"
)

// WriteEvents renders a latest page to w in the given format. An empty
// page still prints the header.
func WriteEvents(w io.Writer, format Format, events []models.Event) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, events)
	case FormatWide:
		return writeTable(w, events)
	}

	if _, err := fmt.Fprintln(w, headerLine); err != nil {
		return err
	}
	for _, e := range events {
		if _, err := fmt.Fprintf(w, "Event: %s\n", e.Kind); err != nil {
			return err
		}
	}
	return nil
}

// WriteNoEvents renders the notice for a retrieval that reported no page.
func WriteNoEvents(w io.Writer, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, nil)
	}
	_, err := fmt.Fprintln(w, emptyLine)
	return err
}

func writeJSON(w io.Writer, events []models.Event) error {
	if events == nil {
		events = []models.Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}

func writeTable(w io.Writer, events []models.Event) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tUSER\tMESSAGE")
	fmt.Fprintln(tw, "----\t----\t----\t-------")

	for _, e := range events {
		ts := "-"
		if !e.CreatedTime.IsZero() {
			ts = e.CreatedTime.Local().Format(time.DateTime)
		}
		user := e.UserName
		if user == "" {
			user = "System"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ts, e.Kind, user, e.FullFormattedMessage)
	}
	return tw.Flush()
}
