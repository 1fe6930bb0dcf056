package crawler

import (
	"fmt"
	"strings"
)

// SignatureTag is the marker embedded in every pipeline-created event
// description. It is the sole mechanism distinguishing pipeline-owned
// events from user-authored ones; cleanup never deletes an event whose
// description lacks it.
const SignatureTag = "[지원사업 정보]"

const (
	noInfo      = "정보없음"
	bodyLimit   = 400
	fieldLabel  = "- 분야: "
	regionLabel = "- 지역: "
)

// IDTag returns the exact identity substring embedded in a description for
// the given document id. The duplicate check matches on this substring, not
// on the store's coarse free-text search.
func IDTag(docID string) string {
	return fmt.Sprintf("ID: %s", docID)
}

// HasSignature reports whether a description was written by this pipeline.
func HasSignature(description string) bool {
	return strings.Contains(description, SignatureTag)
}

// buildDescription synthesizes the event body: signature tag with identity,
// the labeled field summary, a truncated excerpt, and a link line that
// prefers the online application URL over the detail page.
func buildDescription(a *Announcement, body string) string {
	link := fmt.Sprintf("🔗 공고 보러가기: %s", a.DetailURL)
	if a.ApplyURL != "" {
		link = fmt.Sprintf("🔗 신청하러 가기: %s", a.ApplyURL)
	}

	return fmt.Sprintf(`%s (%s)
- 신청기간: %s ~ %s
- 지원대상: %s
- 분야: %s
- 지역: %s
- 사업유형: %s

[상세내용]
%s...

%s`,
		SignatureTag, IDTag(a.DocID),
		orDefault(a.StartDate, "?"), orDefault(a.EndDate, "?"),
		orDefault(a.Target, noInfo),
		orDefault(a.Field, noInfo),
		orDefault(a.Region, noInfo),
		orDefault(a.ProgramType, noInfo),
		truncate(body, bodyLimit),
		link)
}

// ParseDescription re-extracts the genre and region from a
// pipeline-written description. Filtered cleanup uses this to apply the
// same criteria the sync applied at creation time.
func ParseDescription(description string) (field, region string) {
	for _, line := range strings.Split(description, "\n") {
		if v, ok := strings.CutPrefix(line, fieldLabel); ok && field == "" {
			field = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, regionLabel); ok && region == "" {
			region = strings.TrimSpace(v)
		}
	}
	return field, region
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
