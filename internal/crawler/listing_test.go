package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listItemHTML(docID, title string) string {
	return fmt.Sprintf(`<li>
		<a class="title" onclick="goView('%s', 'KOCCA', '3')">%s</a>
		<ul><li class="date">마감일 2026-01-31</li></ul>
	</li>`, docID, title)
}

func listPageHTML(items ...string) string {
	page := `<html><body><ul class="card">`
	for _, it := range items {
		page += it
	}
	return page + `</ul></body></html>`
}

func TestFetchList_StopsOnEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("pageIndex"))
		switch page {
		case 1:
			fmt.Fprint(w, listPageHTML(
				listItemHTML("DOC1", "2026 음악 공모"),
				listItemHTML("DOC2", "청년 예술 지원"),
			))
		default:
			fmt.Fprint(w, listPageHTML())
		}
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	stubs := c.FetchList(context.Background())

	require.Len(t, stubs, 2)
	assert.Equal(t, "DOC1", stubs[0].DocID)
	assert.Equal(t, "2026 음악 공모", stubs[0].Title)
	assert.Equal(t, "2026-01-31", stubs[0].Deadline)
	assert.Contains(t, stubs[0].DetailURL, "docid=DOC1")
	assert.Contains(t, stubs[0].DetailURL, "source=KOCCA")
	assert.Contains(t, stubs[0].DetailURL, "seNo=3")
	assert.Equal(t, "DOC2", stubs[1].DocID)
}

func TestFetchList_StopsAtPageCeiling(t *testing.T) {
	var pagesServed int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		page := r.URL.Query().Get("pageIndex")
		fmt.Fprint(w, listPageHTML(listItemHTML("DOC-p"+page, "공모 "+page)))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL), WithMaxPages(3))
	stubs := c.FetchList(context.Background())

	assert.Equal(t, 3, pagesServed)
	assert.Len(t, stubs, 3)
}

func TestFetchList_ErrorReturnsAccumulated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("pageIndex"))
		if page == 1 {
			fmt.Fprint(w, listPageHTML(listItemHTML("DOC1", "첫 공모")))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	stubs := c.FetchList(context.Background())

	// The page-2 failure truncates the listing, it does not discard page 1.
	require.Len(t, stubs, 1)
	assert.Equal(t, "DOC1", stubs[0].DocID)
}

func TestFetchList_SkipsItemsWithoutHandlerArgs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageIndex") != "1" {
			fmt.Fprint(w, listPageHTML())
			return
		}
		fmt.Fprint(w, listPageHTML(
			`<li><a class="title">onclick 없음</a></li>`,
			`<li><a class="title" onclick="somethingElse('x')">다른 핸들러</a></li>`,
			`<li><a class="title" onclick="goView('', 'SRC', '1')">빈 docid</a></li>`,
			listItemHTML("DOC9", "정상 항목"),
		))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	stubs := c.FetchList(context.Background())

	require.Len(t, stubs, 1)
	assert.Equal(t, "DOC9", stubs[0].DocID)
}
