// Package calendar provides the static table of public holidays and seasonal
// periods consulted when forecasting and explaining spending trends.
package calendar

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/BurntSushi/toml"
)

// Kind classifies a calendar event for explanation purposes.
type Kind string

const (
	KindHoliday Kind = "holiday"
	KindSummer  Kind = "summer"
	KindFasting Kind = "fasting"
)

const dateLayout = "2006-01-02"

//go:embed default_2025.toml
var defaultTable []byte

// Event is a single dated entry of the calendar.
type Event struct {
	Date  time.Time
	Label string
	Kind  Kind
}

// Table is an immutable list of events, kept in declaration order.
type Table struct {
	events []Event
}

type fileEvent struct {
	Date  string `toml:"date"`
	Label string `toml:"label"`
	Kind  string `toml:"kind"`
}

type file struct {
	Events []fileEvent `toml:"events"`
}

// NewTable builds a table from events. The slice is copied.
func NewTable(events []Event) Table {
	out := make([]Event, len(events))
	copy(out, events)
	return Table{events: out}
}

// Default returns the table embedded in the binary.
func Default() Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("calendar: embedded table is invalid: %v", err))
	}
	return t
}

// Parse decodes a TOML calendar document.
func Parse(data []byte) (Table, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return Table{}, fmt.Errorf("parsing calendar: %w", err)
	}

	events := make([]Event, 0, len(f.Events))
	for i, fe := range f.Events {
		d, err := time.Parse(dateLayout, fe.Date)
		if err != nil {
			return Table{}, fmt.Errorf("event %d: invalid date %q: %w", i, fe.Date, err)
		}
		label := strings.TrimSpace(fe.Label)
		if label == "" {
			return Table{}, fmt.Errorf("event %d: label is required", i)
		}
		kind := Kind(strings.ToLower(strings.TrimSpace(fe.Kind)))
		switch kind {
		case "":
			kind = KindHoliday
		case KindHoliday, KindSummer, KindFasting:
		default:
			return Table{}, fmt.Errorf("event %d: unknown kind %q", i, fe.Kind)
		}
		events = append(events, Event{Date: d, Label: label, Kind: kind})
	}
	return Table{events: events}, nil
}

// Load reads a TOML calendar from disk.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading calendar: %w", err)
	}
	return Parse(data)
}

// LoadFromGCS reads a TOML calendar from a gs://bucket/object URI.
func LoadFromGCS(ctx context.Context, client *storage.Client, uri string) (Table, error) {
	bucket, object, err := splitGCSURI(uri)
	if err != nil {
		return Table{}, err
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return Table{}, fmt.Errorf("opening %s: %w", uri, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("reading %s: %w", uri, err)
	}
	return Parse(data)
}

// IsGCSURI reports whether source points at Cloud Storage.
func IsGCSURI(source string) bool {
	return strings.HasPrefix(source, "gs://")
}

func splitGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// uri: %q", uri)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("gs uri must be gs://bucket/object, got %q", uri)
	}
	return bucket, object, nil
}

// Events returns a copy of all events.
func (t Table) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Len returns the number of events.
func (t Table) Len() int {
	return len(t.events)
}

// Between returns events dated in [from, to], in table order.
func (t Table) Between(from, to time.Time) []Event {
	var out []Event
	for _, e := range t.events {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Matching returns the events whose date is one of dates, in table order.
// dates must be normalised to UTC midnight.
func (t Table) Matching(dates map[time.Time]struct{}) []Event {
	var out []Event
	for _, e := range t.events {
		if _, ok := dates[e.Date]; ok {
			out = append(out, e)
		}
	}
	return out
}

// UniqueLabels returns the distinct labels of events in first-seen order.
func UniqueLabels(events []Event) []string {
	seen := make(map[string]bool, len(events))
	var labels []string
	for _, e := range events {
		if seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		labels = append(labels, e.Label)
	}
	return labels
}

// HasKind reports whether any event has the given kind.
func HasKind(events []Event, kind Kind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// FirstOfKind returns the first event with the given kind.
func FirstOfKind(events []Event, kind Kind) (Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

// FromSource loads the table named by source: empty for the built-in table,
// a gs://bucket/object URI, or a local path.
func FromSource(ctx context.Context, source string) (Table, error) {
	switch {
	case source == "":
		return Default(), nil
	case IsGCSURI(source):
		client, err := storage.NewClient(ctx)
		if err != nil {
			return Table{}, fmt.Errorf("creating storage client: %w", err)
		}
		defer client.Close()
		return LoadFromGCS(ctx, client, source)
	default:
		return Load(source)
	}
}
