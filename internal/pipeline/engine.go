// Package pipeline contains the sync and cleanup engines. The sync engine
// turns crawled announcements into calendar events without creating
// duplicates across runs; the cleanup engine deletes only the events the
// pipeline created. Both engines process items strictly sequentially; the
// store adapter rate-limits every call.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/haneul-labs/nurical/internal/crawler"
	"github.com/haneul-labs/nurical/internal/filter"
	"github.com/haneul-labs/nurical/internal/gcal"
	"github.com/haneul-labs/nurical/internal/logger"
)

// exclusionToken marks venue-rental announcements, which are never synced.
const exclusionToken = "대관"

// Store is the calendar store surface the engines need.
type Store interface {
	ListEvents(ctx context.Context, calendarID string, q gcal.EventQuery) (*gcal.EventsPage, error)
	InsertEvent(ctx context.Context, calendarID string, in gcal.EventInput) (*gcal.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// DetailFetcher fetches the detail page for one listing stub.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, stub crawler.Stub) (*crawler.Announcement, error)
}

// Result summarizes one sync run.
type Result struct {
	Processed int
	Created   int
	Skipped   int
	Failed    int
}

// Engine syncs announcements into a calendar.
type Engine struct {
	store    Store
	fetcher  DetailFetcher
	criteria *filter.Criteria
	dryRun   bool
}

// NewEngine creates a sync engine. A nil criteria syncs everything; with
// dryRun set the engine reports what it would create without touching the
// store.
func NewEngine(store Store, fetcher DetailFetcher, criteria *filter.Criteria, dryRun bool) *Engine {
	return &Engine{store: store, fetcher: fetcher, criteria: criteria, dryRun: dryRun}
}

// Run processes each stub in order: enrich, apply exclusion rules and the
// filter, check for an existing event, create when absent. Every failure
// past authorization is per-item; the batch always runs to completion.
func (e *Engine) Run(ctx context.Context, calendarID string, stubs []crawler.Stub) Result {
	var res Result
	total := len(stubs)

	for i, stub := range stubs {
		res.Processed++
		n := i + 1

		a, err := e.fetcher.FetchDetail(ctx, stub)
		if err != nil {
			logger.Warn("[%d/%d] detail fetch failed, skipping: %v", n, total, err)
			res.Failed++
			continue
		}

		if a.StartDate == "" || a.EndDate == "" {
			logger.Info("[%d/%d] no period, skipping: %s", n, total, stub.Title)
			res.Skipped++
			continue
		}

		if strings.Contains(a.Title, exclusionToken) {
			logger.Info("[%d/%d] venue rental, skipping: %s", n, total, a.Title)
			res.Skipped++
			continue
		}

		// The filter sees the raw parsed region/genre, not the title
		// rule's fallbacks.
		if !e.criteria.Matches(a.Region, a.Field) {
			logger.Debug("[%d/%d] filtered out [%s/%s]: %s", n, total, a.Field, a.Region, a.Title)
			res.Skipped++
			continue
		}

		if e.dryRun {
			logger.Info("[%d/%d] would create: %s (%s ~ %s)", n, total, a.Title, a.StartDate, a.EndDate)
			res.Created++
			continue
		}

		if e.exists(ctx, calendarID, a) {
			logger.Info("[%d/%d] already registered: %s", n, total, a.Title)
			res.Skipped++
			continue
		}

		logger.Info("[%d/%d] creating: %s (%s ~ %s)", n, total, a.Title, a.StartDate, a.EndDate)
		if _, err := e.store.InsertEvent(ctx, calendarID, gcal.EventInput{
			Summary:     a.Title,
			Description: a.Description,
			StartDate:   a.StartDate,
			EndDate:     a.EndDate,
		}); err != nil {
			logger.Error("[%d/%d] create failed for %s: %v", n, total, a.Title, err)
			res.Failed++
			continue
		}
		res.Created++
	}

	return res
}

// exists reports whether an event for this announcement is already on the
// calendar. The store's free-text search over a one-day window is only a
// coarse prefilter; the identity comparison is the exact ID tag substring
// in the description. A failed query is treated as "not found" — the
// pipeline would rather risk a duplicate than silently drop a new record —
// but the warning makes the trade auditable.
func (e *Engine) exists(ctx context.Context, calendarID string, a *crawler.Announcement) bool {
	start, err := time.Parse(gcal.DateLayout, a.StartDate)
	if err != nil {
		logger.Warn("unparseable start date %q for %s, duplicate check skipped (a duplicate may be created)",
			a.StartDate, a.DocID)
		return false
	}

	page, err := e.store.ListEvents(ctx, calendarID, gcal.EventQuery{
		TimeMin: start,
		TimeMax: start.AddDate(0, 0, 1),
		Query:   a.DocID,
	})
	if err != nil {
		logger.Warn("duplicate check failed for %s, proceeding as new (a duplicate may be created): %v",
			a.DocID, err)
		return false
	}

	tag := crawler.IDTag(a.DocID)
	for _, ev := range page.Items {
		if strings.Contains(ev.Description, tag) {
			return true
		}
	}
	return false
}
