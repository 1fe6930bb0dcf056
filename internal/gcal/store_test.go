package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// testStore points a real calendar client at a local test server, so the
// request payloads the store produces are exercised end to end.
func testStore(t *testing.T, handler http.Handler) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := calendar.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication())
	require.NoError(t, err)

	return &Store{svc: svc, limiter: NewRateLimiter(DefaultRateLimit)}
}

func TestInsertEvent_EndDateBecomesExclusive(t *testing.T) {
	var got *calendar.Event
	store := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, "calendars/primary/events")

		got = &calendar.Event{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id": "ev1", "summary": %q}`, got.Summary)
	}))

	ev, err := store.InsertEvent(context.Background(), "primary", EventInput{
		Summary:     "[음악/경기] 2026 공모",
		Description: "desc",
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "ev1", ev.ID)

	require.NotNil(t, got)
	assert.Equal(t, "2025-01-01", got.Start.Date)
	// Inclusive Jan 1 - Jan 3 is sent as exclusive end Jan 4.
	assert.Equal(t, "2025-01-04", got.End.Date)
}

func TestInsertEvent_InvalidEndDate(t *testing.T) {
	store := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an unparseable end date")
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := store.InsertEvent(context.Background(), "primary", EventInput{
		StartDate: "2025-01-01",
		EndDate:   "상시모집",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid end date")
}

func TestListEvents_QueryParameters(t *testing.T) {
	store := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("singleEvents"))
		assert.Equal(t, "DOC1", q.Get("q"))
		assert.Equal(t, "tok-1", q.Get("pageToken"))
		assert.Equal(t, "250", q.Get("maxResults"))
		assert.True(t, strings.HasPrefix(q.Get("timeMin"), "2025-01-01T00:00:00"))
		assert.True(t, strings.HasPrefix(q.Get("timeMax"), "2025-01-02T00:00:00"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"id": "ev1", "summary": "공모", "description": "[지원사업 정보] (ID: DOC1)",
				 "start": {"date": "2025-01-01"}, "end": {"date": "2025-01-04"}}
			],
			"nextPageToken": "tok-2"
		}`)
	}))

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	page, err := store.ListEvents(context.Background(), "primary", EventQuery{
		TimeMin:    start,
		TimeMax:    start.AddDate(0, 0, 1),
		Query:      "DOC1",
		PageToken:  "tok-1",
		MaxResults: 250,
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-2", page.NextPageToken)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ev1", page.Items[0].ID)
	assert.Equal(t, "2025-01-01", page.Items[0].StartDate)
	assert.Equal(t, "2025-01-04", page.Items[0].EndDate)
}

func TestDeleteEvent(t *testing.T) {
	var deleted string
	store := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, store.DeleteEvent(context.Background(), "primary", "ev1"))
	assert.Contains(t, deleted, "calendars/primary/events/ev1")
}

func TestListCalendars(t *testing.T) {
	store := testStore(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"id": "cal-1", "summary": "내 캘린더", "accessRole": "owner"},
				{"id": "cal-2", "summary": "공휴일", "accessRole": "reader"}
			]
		}`)
	}))

	cals, err := store.ListCalendars(context.Background())
	require.NoError(t, err)
	require.Len(t, cals, 2)

	assert.True(t, cals[0].Writable())
	assert.False(t, cals[1].Writable())
}

func TestCalendar_Writable(t *testing.T) {
	assert.True(t, Calendar{AccessRole: "owner"}.Writable())
	assert.True(t, Calendar{AccessRole: "writer"}.Writable())
	assert.False(t, Calendar{AccessRole: "reader"}.Writable())
	assert.False(t, Calendar{AccessRole: "freeBusyReader"}.Writable())
}
