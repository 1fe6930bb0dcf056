package pipeline

import (
	"context"
	"fmt"

	"github.com/haneul-labs/nurical/internal/crawler"
	"github.com/haneul-labs/nurical/internal/filter"
	"github.com/haneul-labs/nurical/internal/gcal"
	"github.com/haneul-labs/nurical/internal/logger"
)

// cleanupPageSize is the store's maximum events page size.
const cleanupPageSize = 250

// Cleaner deletes pipeline-created events from a calendar. Events without
// the signature tag are never touched, so user-authored events survive any
// cleanup. With criteria set, only events whose embedded genre/region
// match are deleted.
type Cleaner struct {
	store    Store
	criteria *filter.Criteria
}

// NewCleaner creates a cleanup engine. A nil criteria deletes every
// pipeline-created event.
func NewCleaner(store Store, criteria *filter.Criteria) *Cleaner {
	return &Cleaner{store: store, criteria: criteria}
}

// Run pages through the calendar and deletes matching pipeline events,
// returning how many were deleted. A single failed delete is logged and
// the scan continues; a failed page listing ends the run with the count so
// far. Throttling happens in the store adapter, uniformly for every call.
func (c *Cleaner) Run(ctx context.Context, calendarID string) (int, error) {
	deleted := 0
	pageToken := ""

	for {
		page, err := c.store.ListEvents(ctx, calendarID, gcal.EventQuery{
			PageToken:  pageToken,
			MaxResults: cleanupPageSize,
		})
		if err != nil {
			return deleted, fmt.Errorf("list events: %w", err)
		}

		for _, ev := range page.Items {
			if !crawler.HasSignature(ev.Description) {
				logger.Debug("keeping user event: %s", ev.Summary)
				continue
			}

			if c.criteria != nil {
				field, region := crawler.ParseDescription(ev.Description)
				if !c.criteria.Matches(region, field) {
					logger.Debug("keeping non-matching event [%s/%s]: %s", field, region, ev.Summary)
					continue
				}
			}

			if err := c.store.DeleteEvent(ctx, calendarID, ev.ID); err != nil {
				logger.Error("delete failed for %s: %v", ev.Summary, err)
				continue
			}
			logger.Info("deleted: %s", ev.Summary)
			deleted++
		}

		if page.NextPageToken == "" {
			return deleted, nil
		}
		pageToken = page.NextPageToken
	}
}
