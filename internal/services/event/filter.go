package event

import (
	"strings"

	"github.com/majorleaf/eventhub-go/internal/models"
)

// Filter narrows an already-loaded event slice. It is a pure function applied
// in full on every call; nothing is cached between calls.
//
// query matches case-insensitively as a substring of title, description or
// location (any one of the three). category "" or "All" means no category
// filter. priceFilter is one of "all" (or ""), "free" (price == 0) and
// "paid" (price > 0).
func Filter(events []models.Event, query, category, priceFilter string) []models.Event {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if q != "" {
			title := strings.ToLower(e.Title)
			description := strings.ToLower(e.Description)
			location := strings.ToLower(e.Location)
			if !strings.Contains(title, q) && !strings.Contains(description, q) && !strings.Contains(location, q) {
				continue
			}
		}

		if category != "" && category != "All" && e.Category != category {
			continue
		}

		switch priceFilter {
		case "free":
			if e.Price != 0 {
				continue
			}
		case "paid":
			if e.Price <= 0 {
				continue
			}
		}

		filtered = append(filtered, e)
	}

	return filtered
}
