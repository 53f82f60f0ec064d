package viewmodel

import (
	"net/url"
	"strconv"

	"github.com/Kabuna254/Job-App/internal/domain/listing"
)

// Pagination contains Previous/Next controls for the job list.
type Pagination struct {
	Show       bool
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

// PaginationFor builds controls for v, linking to basePath?page=N. Controls
// are hidden for demo content and single pages.
func PaginationFor(v listing.View, basePath string) Pagination {
	p := Pagination{
		Show:       v.ShowPagination(),
		Page:       v.Page,
		TotalPages: v.TotalPages,
		HasPrev:    v.HasPrev(),
		HasNext:    v.HasNext(),
	}
	if p.HasPrev {
		p.PrevURL = pageURL(basePath, v.PrevPage())
	}
	if p.HasNext {
		p.NextURL = pageURL(basePath, v.NextPage())
	}
	return p
}

func pageURL(basePath string, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return basePath + "?" + q.Encode()
}
