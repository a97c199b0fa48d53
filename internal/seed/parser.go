// Package seed loads events from YAML documents into the event store.
// The parser is a pure function: bytes in, domain events out.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

//go:embed events.yaml
var builtin []byte

type document struct {
	Events []domain.Event `yaml:"events"`
}

// Builtin returns the six built-in historical events.
func Builtin() []domain.Event {
	events, err := Parse(bytes.NewReader(builtin))
	if err != nil {
		panic(fmt.Sprintf("seed: builtin events: %v", err))
	}
	return events
}

// ParseFile reads a seed document from path.
func ParseFile(path string) ([]domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: open %s: %w", path, err)
	}
	defer f.Close()

	events, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("seed: %s: %w", path, err)
	}
	return events, nil
}

// Parse decodes a seed document. Missing tags are derived from
// category, topic, name and start year.
func Parse(r io.Reader) ([]domain.Event, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	events := make([]domain.Event, 0, len(doc.Events))
	for i, e := range doc.Events {
		if e.DateStart.IsZero() {
			return nil, fmt.Errorf("event %d (%s): %w", i, e.Name, domain.NewValidationError("date_start", "required"))
		}
		if e.DateEnd != nil && e.DateEnd.Before(e.DateStart) {
			return nil, fmt.Errorf("event %d (%s): %w", i, e.Name, domain.NewValidationError("date_end", "must not precede date_start"))
		}
		if strings.TrimSpace(e.Tag) == "" {
			e.Tag = domain.MakeTag(e.Category, e.Topic, e.Name, e.DateStart)
		}
		e.AffectedBy = domain.DedupeTags(e.AffectedBy)
		e.Affects = domain.DedupeTags(e.Affects)
		events = append(events, e)
	}
	return events, nil
}
