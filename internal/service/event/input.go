package event

import (
	"slices"
	"strings"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// CreateEventInput holds the parameters for creating an event.
// Dates are ISO "YYYY-MM-DD"; an empty DateEnd means an instantaneous event.
type CreateEventInput struct {
	Category    string
	Topic       string
	Name        string
	Country     string
	DateStart   string
	DateEnd     string
	Description string
	AffectedBy  []string
	Affects     []string
}

// parse validates the input and converts it to a domain.NewEvent without a tag.
func (i CreateEventInput) parse() (domain.NewEvent, error) {
	var errs []domain.FieldError

	for _, f := range []struct{ name, value string }{
		{"category", i.Category},
		{"topic", i.Topic},
		{"name", i.Name},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "required"})
		}
	}

	var start domain.Date
	if strings.TrimSpace(i.DateStart) == "" {
		errs = append(errs, domain.FieldError{Field: "date_start", Message: "required"})
	} else if d, err := domain.ParseDate(i.DateStart); err != nil {
		errs = append(errs, domain.FieldError{Field: "date_start", Message: err.Error()})
	} else {
		start = d
	}

	end, err := domain.ParseOptionalDate(i.DateEnd)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "date_end", Message: err.Error()})
	}

	if end != nil && !start.IsZero() && end.Before(start) {
		errs = append(errs, domain.FieldError{Field: "date_end", Message: "must not precede date_start"})
	}

	if len(errs) > 0 {
		return domain.NewEvent{}, &domain.ValidationError{Errors: errs}
	}

	return domain.NewEvent{
		Category:    domain.CleanLabel(i.Category),
		Topic:       domain.CleanLabel(i.Topic),
		Name:        domain.CleanLabel(i.Name),
		Country:     domain.CleanLabel(i.Country),
		DateStart:   start,
		DateEnd:     end,
		Description: strings.TrimSpace(i.Description),
		AffectedBy:  domain.DedupeTags(i.AffectedBy),
		Affects:     domain.DedupeTags(i.Affects),
	}, nil
}

// Validate checks all fields and collects all errors.
func (i CreateEventInput) Validate() error {
	_, err := i.parse()
	return err
}

// UpdateEventInput holds the parameters for a partial update.
// Nil fields are left unchanged. DateEnd set to "" clears the end date.
type UpdateEventInput struct {
	ID          int64
	Category    *string
	Topic       *string
	Name        *string
	Country     *string
	Description *string
	DateStart   *string
	DateEnd     *string
	AffectedBy  *[]string
	Affects     *[]string
}

// toUpdate validates the input and converts it to a domain.EventUpdate.
func (i UpdateEventInput) toUpdate() (domain.EventUpdate, error) {
	var errs []domain.FieldError

	if i.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"category", i.Category},
		{"topic", i.Topic},
		{"name", i.Name},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "must not be empty"})
		}
	}

	u := domain.EventUpdate{
		Category:    cleanOrNil(i.Category),
		Topic:       cleanOrNil(i.Topic),
		Name:        cleanOrNil(i.Name),
		Country:     cleanOrNil(i.Country),
		Description: trimOrNil(i.Description),
	}

	if i.DateStart != nil {
		d, err := domain.ParseDate(*i.DateStart)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "date_start", Message: err.Error()})
		} else {
			u.DateStart = &d
		}
	}

	if i.DateEnd != nil {
		d, err := domain.ParseOptionalDate(*i.DateEnd)
		switch {
		case err != nil:
			errs = append(errs, domain.FieldError{Field: "date_end", Message: err.Error()})
		case d == nil:
			u.ClearDateEnd = true
		default:
			u.DateEnd = d
		}
	}

	if i.AffectedBy != nil {
		tags := domain.DedupeTags(*i.AffectedBy)
		u.AffectedBy = &tags
	}
	if i.Affects != nil {
		tags := domain.DedupeTags(*i.Affects)
		u.Affects = &tags
	}

	if len(errs) > 0 {
		return domain.EventUpdate{}, &domain.ValidationError{Errors: errs}
	}
	return u, nil
}

// Validate checks all fields and collects all errors.
func (i UpdateEventInput) Validate() error {
	_, err := i.toUpdate()
	return err
}

// LinkInput holds the parameters for adding one relation edge.
type LinkInput struct {
	Tag        string
	Direction  string
	RelatedTag string
}

// Validate checks all fields and collects all errors.
func (i LinkInput) Validate() error {
	var errs []domain.FieldError

	tag := strings.TrimSpace(i.Tag)
	related := strings.TrimSpace(i.RelatedTag)

	if tag == "" {
		errs = append(errs, domain.FieldError{Field: "tag", Message: "required"})
	}
	if related == "" {
		errs = append(errs, domain.FieldError{Field: "related_tag", Message: "required"})
	}
	if !domain.Direction(strings.TrimSpace(i.Direction)).Valid() {
		errs = append(errs, domain.FieldError{
			Field:   "direction",
			Message: "must be " + string(domain.DirectionAffects) + " or " + string(domain.DirectionAffectedBy),
		})
	}
	if tag != "" && tag == related {
		errs = append(errs, domain.FieldError{Field: "related_tag", Message: "an event cannot relate to itself"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListEventsInput holds the search parameters for listing events.
// Nil Categories or Countries mean no filter; a non-nil empty slice matches nothing.
type ListEventsInput struct {
	Text       string
	Categories []string
	Countries  []string
	Start      string
	End        string
}

func (i ListEventsInput) toQuery() (domain.EventQuery, error) {
	var errs []domain.FieldError

	start, err := domain.ParseOptionalDate(i.Start)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "start", Message: err.Error()})
	}
	end, err := domain.ParseOptionalDate(i.End)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "end", Message: err.Error()})
	}

	if len(errs) > 0 {
		return domain.EventQuery{}, &domain.ValidationError{Errors: errs}
	}

	return domain.EventQuery{
		Text:       strings.TrimSpace(i.Text),
		Categories: i.Categories,
		Countries:  i.Countries,
		Start:      start,
		End:        end,
	}, nil
}

// selfLoopErrors reports relation lists that name the event itself.
func selfLoopErrors(tag string, affectedBy, affects []string) []domain.FieldError {
	var errs []domain.FieldError
	if slices.Contains(affectedBy, tag) {
		errs = append(errs, domain.FieldError{Field: "affected_by", Message: "an event cannot relate to itself"})
	}
	if slices.Contains(affects, tag) {
		errs = append(errs, domain.FieldError{Field: "affects", Message: "an event cannot relate to itself"})
	}
	return errs
}
