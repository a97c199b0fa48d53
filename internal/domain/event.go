package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Event is a single historical occurrence or period.
type Event struct {
	ID          int64    `json:"id"          yaml:"-"`
	Tag         string   `json:"tag"         yaml:"tag"`
	Category    string   `json:"category"    yaml:"category"`
	Topic       string   `json:"topic"       yaml:"topic"`
	Name        string   `json:"name"        yaml:"name"`
	Country     string   `json:"country"     yaml:"country"`
	DateStart   Date     `json:"date_start"  yaml:"date_start"`
	DateEnd     *Date    `json:"date_end"    yaml:"date_end,omitempty"`
	Description string   `json:"description" yaml:"description"`
	AffectedBy  []string `json:"affected_by" yaml:"affected_by,omitempty"`
	Affects     []string `json:"affects"     yaml:"affects,omitempty"`
}

// EffectiveEnd returns DateEnd, or DateStart for an instantaneous event.
func (e Event) EffectiveEnd() Date {
	if e.DateEnd != nil {
		return *e.DateEnd
	}
	return e.DateStart
}

// IsInstant reports whether the event has no end date.
func (e Event) IsInstant() bool { return e.DateEnd == nil }

// Relations returns the tag list for the given direction.
func (e Event) Relations(dir Direction) []string {
	if dir == DirectionAffectedBy {
		return e.AffectedBy
	}
	return e.Affects
}

// Overlaps reports whether the effective interval of e intersects [start, end].
// A nil bound is open.
func (e Event) Overlaps(start, end *Date) bool {
	if start != nil && e.EffectiveEnd().Before(*start) {
		return false
	}
	if end != nil && e.DateStart.After(*end) {
		return false
	}
	return true
}

// Direction names one side of the relation graph.
type Direction string

const (
	DirectionAffects    Direction = "affects"
	DirectionAffectedBy Direction = "affected_by"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.TrimSpace(s))
	if !d.Valid() {
		return "", NewValidationError("direction", fmt.Sprintf("must be %q or %q", DirectionAffects, DirectionAffectedBy))
	}
	return d, nil
}

func (d Direction) Valid() bool {
	return d == DirectionAffects || d == DirectionAffectedBy
}

// Opposite returns the mirrored direction.
func (d Direction) Opposite() Direction {
	if d == DirectionAffects {
		return DirectionAffectedBy
	}
	return DirectionAffects
}

// NewEvent holds the fields supplied on creation. Tag must already be set.
type NewEvent struct {
	Tag         string
	Category    string
	Topic       string
	Name        string
	Country     string
	DateStart   Date
	DateEnd     *Date
	Description string
	AffectedBy  []string
	Affects     []string
}

// EventUpdate is a partial update. Nil fields are left unchanged.
type EventUpdate struct {
	Category     *string
	Topic        *string
	Name         *string
	Country      *string
	Description  *string
	DateStart    *Date
	DateEnd      *Date
	ClearDateEnd bool
	AffectedBy   *[]string
	Affects      *[]string
}

// IsEmpty reports whether the update changes nothing.
func (u EventUpdate) IsEmpty() bool {
	return u.Category == nil && u.Topic == nil && u.Name == nil && u.Country == nil &&
		u.Description == nil && u.DateStart == nil && u.DateEnd == nil && !u.ClearDateEnd &&
		u.AffectedBy == nil && u.Affects == nil
}

// Apply returns a copy of e with the update's scalar fields applied.
// Relation lists are replaced when supplied.
func (u EventUpdate) Apply(e Event) Event {
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Topic != nil {
		e.Topic = *u.Topic
	}
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Country != nil {
		e.Country = *u.Country
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.DateStart != nil {
		e.DateStart = *u.DateStart
	}
	if u.ClearDateEnd {
		e.DateEnd = nil
	} else if u.DateEnd != nil {
		end := *u.DateEnd
		e.DateEnd = &end
	}
	if u.AffectedBy != nil {
		e.AffectedBy = slices.Clone(*u.AffectedBy)
	}
	if u.Affects != nil {
		e.Affects = slices.Clone(*u.Affects)
	}
	return e
}

var tagReplacer = strings.NewReplacer(" ", "_", ",", "_")

// MakeTag builds the graph key Category_Topic_Name_Year.
func MakeTag(category, topic, name string, start Date) string {
	raw := fmt.Sprintf("%s_%s_%s_%04d",
		CleanLabel(category),
		CleanLabel(topic),
		CleanLabel(name),
		start.Year(),
	)
	return tagReplacer.Replace(raw)
}

// DedupeTags trims, drops empties and removes repeats, keeping first-seen order.
func DedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
