package timeline

import (
	"github.com/heartmarshall/timeline-backend/internal/domain"
)

func d(s string) domain.Date { return domain.MustParseDate(s) }

func dp(s string) *domain.Date { return domain.DatePtr(domain.MustParseDate(s)) }

// ev builds an event; an empty end makes it instantaneous.
func ev(tag, category, country, start, end string) domain.Event {
	e := domain.Event{
		Tag:       tag,
		Category:  category,
		Country:   country,
		Name:      tag,
		DateStart: d(start),
	}
	if end != "" {
		e.DateEnd = dp(end)
	}
	return e
}

func worldWars() []domain.Event {
	wwi := ev("Politics_War_WWI_1914", "Politics", "Global", "1914-07-28", "1918-11-11")
	wwi.Affects = []string{"Politics_War_WWII_1939"}
	wwii := ev("Politics_War_WWII_1939", "Politics", "Global", "1939-09-01", "1945-09-02")
	wwii.AffectedBy = []string{"Politics_War_WWI_1914"}
	return []domain.Event{wwi, wwii}
}

func tags(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Tag
	}
	return out
}
