package crawler

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/haneul-labs/nurical/internal/logger"
)

// goViewPattern matches the inline handler on each listing title link:
// goView('<docid>', '<source>', '<seNo>'). Items whose handler does not
// match, or that carry an empty docid, are dropped.
var goViewPattern = regexp.MustCompile(`goView\('([^']*)',\s*'([^']*)',\s*'([^']*)'\)`)

// FetchList paginates the search endpoint and returns every stub found.
// Pagination stops on the first empty page or at the page ceiling. An HTTP
// or parse error ends pagination early and returns what was accumulated so
// far; a truncated listing is data, not a failure.
func (c *Crawler) FetchList(ctx context.Context) []Stub {
	var all []Stub

	for pageIndex := 1; pageIndex <= c.maxPages; pageIndex++ {
		doc, err := c.fetchDocument(ctx, c.listURL(pageIndex))
		if err != nil {
			logger.Warn("listing page %d failed, keeping %d items collected so far: %v",
				pageIndex, len(all), err)
			return all
		}

		pageItems := c.parseListPage(doc)
		if len(pageItems) == 0 {
			break
		}

		all = append(all, pageItems...)
		logger.Debug("listing page %d: %d items (%d total)", pageIndex, len(pageItems), len(all))
	}

	return all
}

func (c *Crawler) parseListPage(doc *goquery.Document) []Stub {
	var stubs []Stub

	doc.Find("ul.card li").Each(func(_ int, s *goquery.Selection) {
		stub, ok := c.extractStub(s)
		if ok {
			stubs = append(stubs, stub)
		}
	})

	return stubs
}

// extractStub pulls one stub out of a listing card. The inline-handler
// argument extraction is the single coupling point to the site's current
// markup; a markup change is a one-site fix here.
func (c *Crawler) extractStub(s *goquery.Selection) (Stub, bool) {
	title := s.Find("a.title")

	onclick, ok := title.Attr("onclick")
	if !ok {
		return Stub{}, false
	}

	m := goViewPattern.FindStringSubmatch(onclick)
	if m == nil || m[1] == "" {
		return Stub{}, false
	}

	docID, source, seNo := m[1], m[2], m[3]

	return Stub{
		DocID:     docID,
		Source:    source,
		SeNo:      seNo,
		DetailURL: c.detailURL(docID, source, seNo),
		Title:     strings.TrimSpace(title.Text()),
		Deadline:  strings.TrimSpace(strings.Replace(s.Find("li.date").Text(), "마감일", "", 1)),
	}, true
}
