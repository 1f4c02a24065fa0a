package event

import (
	"testing"
	"time"

	"github.com/majorleaf/eventhub-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleEvents() []models.Event {
	date := time.Now().Add(72 * time.Hour)
	return []models.Event{
		{Title: "Live Jazz Night", Description: "An evening of improvised jazz", Location: "Music Hall", EventDate: date, Price: 25.00, Category: "Music"},
		{Title: "Go Meetup", Description: "Monthly Go developers meetup", Location: "Tech Hub", EventDate: date, Price: 0, Category: "Tech"},
		{Title: "City Marathon", Description: "Annual 42k", Location: "Riverside Park", EventDate: date, Price: 40.00, Category: "Sports"},
	}
}

func TestFilterQueryMatchesLocation(t *testing.T) {
	// "music" hits "Live Jazz Night" through its location, not its title.
	filtered := Filter(sampleEvents(), "music", "", "all")

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Live Jazz Night", filtered[0].Title)
}

func TestFilterQueryCaseInsensitive(t *testing.T) {
	filtered := Filter(sampleEvents(), "MARATHON", "", "")

	assert.Len(t, filtered, 1)
	assert.Equal(t, "City Marathon", filtered[0].Title)
}

func TestFilterCategory(t *testing.T) {
	filtered := Filter(sampleEvents(), "", "Tech", "all")
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Go Meetup", filtered[0].Title)

	// "All" and "" both mean no category filter.
	assert.Len(t, Filter(sampleEvents(), "", "All", "all"), 3)
	assert.Len(t, Filter(sampleEvents(), "", "", "all"), 3)
}

func TestFilterPriceBands(t *testing.T) {
	free := Filter(sampleEvents(), "", "", "free")
	assert.Len(t, free, 1)
	assert.Equal(t, "Go Meetup", free[0].Title)

	paid := Filter(sampleEvents(), "", "", "paid")
	assert.Len(t, paid, 2)

	all := Filter(sampleEvents(), "", "", "all")
	assert.Len(t, all, 3)
}

func TestFilterIdempotent(t *testing.T) {
	once := Filter(sampleEvents(), "jazz", "Music", "paid")
	twice := Filter(once, "jazz", "Music", "paid")

	assert.Equal(t, once, twice)
}

func TestFilterNoMatch(t *testing.T) {
	filtered := Filter(sampleEvents(), "opera", "", "all")
	assert.Empty(t, filtered)
}
