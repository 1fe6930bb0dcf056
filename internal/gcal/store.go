// Package gcal is the Google Calendar adapter for the sync pipeline. It
// exposes exactly the four store operations the engines need — list
// calendars, list events, insert an all-day event, delete an event — over
// google.golang.org/api/calendar/v3, with uniform rate limiting on every
// call. The authorized client is an explicit Store value handed to the
// engines; nothing here is package-global.
package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// DateLayout is the all-day event date format the Calendar API requires.
const DateLayout = "2006-01-02"

// Calendar is one entry from the user's calendar list.
type Calendar struct {
	ID         string
	Summary    string
	AccessRole string
}

// Writable reports whether events can be created on this calendar.
func (c Calendar) Writable() bool {
	return c.AccessRole == "owner" || c.AccessRole == "writer"
}

// Event is the subset of a store event the pipeline reads.
type Event struct {
	ID          string
	Summary     string
	Description string
	// StartDate and EndDate are all-day dates; EndDate is exclusive,
	// per the store's convention.
	StartDate string
	EndDate   string
}

// EventInput describes an all-day event to create. EndDate is INCLUSIVE
// (the last day the program runs); the store converts it to the API's
// exclusive end date.
type EventInput struct {
	Summary     string
	Description string
	StartDate   string
	EndDate     string
}

// EventQuery selects events for ListEvents.
type EventQuery struct {
	// TimeMin/TimeMax bound the search window when non-zero.
	TimeMin time.Time
	TimeMax time.Time
	// Query is the store's free-text search. It is a coarse prefilter;
	// callers must do their own exact matching on the results.
	Query      string
	PageToken  string
	MaxResults int64
}

// EventsPage is one page of ListEvents results.
type EventsPage struct {
	Items         []Event
	NextPageToken string
}

// Store wraps the Calendar API service behind the four operations the
// sync and cleanup engines use.
type Store struct {
	svc     *calendar.Service
	limiter *RateLimiter
}

// NewStore creates a Store from an OAuth2 token source.
func NewStore(ctx context.Context, ts oauth2.TokenSource) (*Store, error) {
	return NewStoreWithRateLimit(ctx, ts, DefaultRateLimit)
}

// NewStoreWithRateLimit creates a Store with a custom rate limit.
func NewStoreWithRateLimit(ctx context.Context, ts oauth2.TokenSource, cfg RateLimitConfig) (*Store, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Store{svc: svc, limiter: NewRateLimiter(cfg)}, nil
}

// ListCalendars returns every calendar on the user's calendar list.
func (s *Store) ListCalendars(ctx context.Context) ([]Calendar, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var calendars []Calendar
	err := s.svc.CalendarList.List().Pages(ctx, func(page *calendar.CalendarList) error {
		for _, item := range page.Items {
			calendars = append(calendars, Calendar{
				ID:         item.Id,
				Summary:    item.Summary,
				AccessRole: item.AccessRole,
			})
		}
		return nil
	})
	if err != nil {
		return nil, s.apiError("list calendars", err)
	}
	return calendars, nil
}

// Probe makes a minimal calendar-list request to validate credentials.
func (s *Store) Probe(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.svc.CalendarList.List().MaxResults(1).Context(ctx).Do()
	if err != nil {
		return s.apiError("probe", err)
	}
	return nil
}

// ListEvents returns one page of events matching the query. Recurring
// events are expanded to single instances.
func (s *Store) ListEvents(ctx context.Context, calendarID string, q EventQuery) (*EventsPage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := s.svc.Events.List(calendarID).SingleEvents(true).Context(ctx)
	if !q.TimeMin.IsZero() {
		call = call.TimeMin(q.TimeMin.Format(time.RFC3339))
	}
	if !q.TimeMax.IsZero() {
		call = call.TimeMax(q.TimeMax.Format(time.RFC3339))
	}
	if q.Query != "" {
		call = call.Q(q.Query)
	}
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}
	if q.MaxResults > 0 {
		call = call.MaxResults(q.MaxResults)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, s.apiError("list events", err)
	}

	page := &EventsPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		page.Items = append(page.Items, eventFromAPI(item))
	}
	return page, nil
}

// InsertEvent creates an all-day event. The input end date is inclusive;
// the store sends end+1 day because the API treats the end date as
// exclusive. An event spanning Jan 1 to Jan 3 inclusive goes out as
// start=Jan 1, end=Jan 4.
func (s *Store) InsertEvent(ctx context.Context, calendarID string, in EventInput) (*Event, error) {
	end, err := time.Parse(DateLayout, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", in.EndDate, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Events.Insert(calendarID, &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       &calendar.EventDateTime{Date: in.StartDate},
		End:         &calendar.EventDateTime{Date: end.AddDate(0, 0, 1).Format(DateLayout)},
	}).Context(ctx).Do()
	if err != nil {
		return nil, s.apiError("insert event", err)
	}

	ev := eventFromAPI(resp)
	return &ev, nil
}

// DeleteEvent removes one event from a calendar.
func (s *Store) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := s.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return s.apiError("delete event", err)
	}
	return nil
}

// apiError wraps an API error and records 429s with the limiter so the
// next call backs off.
func (s *Store) apiError(op string, err error) error {
	wrapped := WrapError(err)
	if IsRateLimited(wrapped) {
		s.limiter.RecordRateLimitError(0)
	}
	return fmt.Errorf("%s: %w", op, wrapped)
}

func eventFromAPI(item *calendar.Event) Event {
	ev := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
	}
	if item.Start != nil {
		ev.StartDate = item.Start.Date
	}
	if item.End != nil {
		ev.EndDate = item.End.Date
	}
	return ev
}
