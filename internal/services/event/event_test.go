package event

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/majorleaf/eventhub-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.Migrate(db))

	r := gin.New()
	NewService(db).SetupRoutes(r)
	return db, r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListEventsUpcomingOnlyAscending(t *testing.T) {
	db, r := setupTest(t)

	require.NoError(t, db.Create(&models.Event{Title: "Old Expo", EventDate: time.Now().Add(-24 * time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Event{Title: "Later", EventDate: time.Now().Add(72 * time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Event{Title: "Sooner", EventDate: time.Now().Add(24 * time.Hour)}).Error)

	w := get(r, "/events")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []models.Event `json:"events"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Sooner", resp.Events[0].Title)
	assert.Equal(t, "Later", resp.Events[1].Title)
}

func TestListEventsAppliesFilters(t *testing.T) {
	db, r := setupTest(t)

	date := time.Now().Add(24 * time.Hour)
	require.NoError(t, db.Create(&models.Event{Title: "Live Jazz Night", Location: "Music Hall", EventDate: date, Price: 25, Category: "Music"}).Error)
	require.NoError(t, db.Create(&models.Event{Title: "Go Meetup", Location: "Tech Hub", EventDate: date, Price: 0, Category: "Tech"}).Error)

	w := get(r, "/events?query=music&price=paid")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Live Jazz Night", resp.Events[0].Title)
}

func TestGetEventNotFound(t *testing.T) {
	_, r := setupTest(t)

	w := get(r, "/events/42")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/events", resp["redirect"])
}

func TestGetEventByID(t *testing.T) {
	db, r := setupTest(t)

	event := models.Event{Title: "Modern Art Expo", EventDate: time.Now().Add(24 * time.Hour), Price: 12.50}
	require.NoError(t, db.Create(&event).Error)

	w := get(r, "/events/1")
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Modern Art Expo", got.Title)
	assert.Equal(t, 12.50, got.Price)
}
