package crawler

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	genreFallback  = "기타"
	regionFallback = "전국"
	genreWildcard  = "전체"
)

// FetchDetail fetches one announcement's detail page and parses it into an
// Announcement. A fetch or parse failure affects only this item; callers
// skip it and continue.
func (c *Crawler) FetchDetail(ctx context.Context, stub Stub) (*Announcement, error) {
	doc, err := c.fetchDocument(ctx, stub.DetailURL)
	if err != nil {
		return nil, fmt.Errorf("detail %s: %w", stub.DocID, err)
	}

	a := &Announcement{
		DocID:     stub.DocID,
		DetailURL: stub.DetailURL,
	}

	// Application period, e.g. "2025-12-01 ~ 2026-02-27". The raw strings
	// propagate as-is; date validation happens at event creation.
	if period := strings.TrimSpace(doc.Find(".top.applic").Text()); period != "" {
		start, end, _ := strings.Cut(period, "~")
		a.StartDate = strings.TrimSpace(start)
		a.EndDate = strings.TrimSpace(end)
	}

	c.parseInfoList(doc, a)

	a.Title = FormatTitle(stub.Title, a.Field, a.Region)

	body := strings.TrimSpace(doc.Find(".supt-content").Not(".file-wrap").Text())
	a.Description = buildDescription(a, body)

	return a, nil
}

// parseInfoList walks the labeled info list and fills the structured
// fields. Labels are matched by substring; this is best-effort
// schema-on-read over an uncontrolled document, kept in one place so a
// label change on the site only touches this function.
func (c *Crawler) parseInfoList(doc *goquery.Document, a *Announcement) {
	doc.Find(".info-txt > li").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("strong").First().Text())

		if strings.Contains(label, "온라인신청") {
			if href, ok := s.Find("a.site-link").Attr("href"); ok && href != "" {
				a.ApplyURL = href
			}
		}

		value := strings.TrimSpace(s.Find("ul.view-list li").Text())
		if value == "" {
			value = strings.TrimSpace(s.Find(".organ").Text())
		}

		switch {
		case strings.Contains(label, "지원대상"):
			a.Target = value
		case strings.Contains(label, "분야"):
			a.Field = value
		case strings.Contains(label, "사업유형"):
			a.ProgramType = value
		case strings.Contains(label, "지역"):
			a.Region = value
		}
	})
}

// FormatTitle applies the calendar title rule: "[genre/region] title", with
// the genre segment omitted when the genre is the wildcard value.
func FormatTitle(title, field, region string) string {
	genre := field
	if genre == "" {
		genre = genreFallback
	}
	if region == "" {
		region = regionFallback
	}

	if genre == genreWildcard {
		return fmt.Sprintf("[%s] %s", region, title)
	}
	return fmt.Sprintf("[%s/%s] %s", genre, region, title)
}
