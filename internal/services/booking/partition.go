package booking

import (
	"time"

	"github.com/majorleaf/eventhub-go/internal/models"
)

// Partition splits a user's bookings into upcoming and past/cancelled. A
// booking is upcoming iff its event date is at or after now and its status is
// still confirmed; everything else falls in past. The split is total and
// disjoint and is recomputed from scratch on every load.
func Partition(bookings []models.Booking, now time.Time) (upcoming, past []models.Booking) {
	upcoming = make([]models.Booking, 0, len(bookings))
	past = make([]models.Booking, 0, len(bookings))

	for _, b := range bookings {
		if b.Status == "confirmed" && !b.Event.EventDate.Before(now) {
			upcoming = append(upcoming, b)
		} else {
			past = append(past, b)
		}
	}

	return upcoming, past
}
