package crawler

// Stub is the minimal identity of one announcement on a listing page,
// before the detail page has been fetched.
type Stub struct {
	// DocID is the site-assigned document id, stable per announcement.
	DocID string
	// Source and SeNo are the remaining goView() arguments; both are
	// needed to build the detail URL.
	Source string
	SeNo   string
	// DetailURL is the fully-built detail page URL.
	DetailURL string
	// Title is the raw listing title, without the [genre/region] prefix.
	Title string
	// Deadline is the raw deadline text from the listing card.
	Deadline string
}

// Announcement is a fully parsed support-program announcement, ready to be
// synced into a calendar. It is never mutated after FetchDetail returns it.
type Announcement struct {
	DocID     string
	DetailURL string
	// Title carries the [genre/region] prefix applied by the title rule.
	Title string
	// StartDate and EndDate are the raw period strings from the detail
	// page (normally YYYY-MM-DD). Both ends are inclusive; the calendar
	// adapter handles the exclusive-end conversion.
	StartDate string
	EndDate   string
	// Target, Field, ProgramType and Region come from the labeled info
	// list; empty when the label was absent.
	Target      string
	Field       string
	ProgramType string
	Region      string
	// ApplyURL is the online application link, when the page has one.
	ApplyURL string
	// Description is the synthesized event body, including the
	// signature tag that marks pipeline-owned events.
	Description string
}
