package admin

import (
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/geomap"
	"net/url"
	"strconv"
)

// Template names rendered by the views package.
const (
	TemplateChangelist = "changelist"
	TemplateAddForm    = "add_form"
	TemplateChangeForm = "change_form"
)

// ChangelistResponse is one page of the location list.
type ChangelistResponse struct {
	Title    string
	BasePath string
	Rows     []*domain.Location
	Total    int
	Page     int
	NumPages int
	Query    string
	Ordering string
	CanAdd   bool

	filtered []geomap.Item
}

func (r *ChangelistResponse) Template() string { return TemplateChangelist }

// Filtered returns every location matching the search, across all pages.
func (r *ChangelistResponse) Filtered() []geomap.Item { return r.filtered }

func (r *ChangelistResponse) HasPrev() bool { return r.Page > 1 }
func (r *ChangelistResponse) HasNext() bool { return r.Page < r.NumPages }

// PageURL links to page n keeping the search and ordering.
func (r *ChangelistResponse) PageURL(n int) string {
	return r.BasePath + "?" + r.query(r.Ordering, n)
}

// OrderURL links to the first page sorted by ordering.
func (r *ChangelistResponse) OrderURL(ordering string) string {
	return r.BasePath + "?" + r.query(ordering, 1)
}

func (r *ChangelistResponse) query(ordering string, page int) string {
	q := url.Values{}
	if r.Query != "" {
		q.Set(ParamSearch, r.Query)
	}
	if ordering != "" {
		q.Set(ParamOrdering, ordering)
	}
	if page > 1 {
		q.Set(ParamPage, strconv.Itoa(page))
	}
	return q.Encode()
}

// ChangeURL links to the change form of loc.
func (r *ChangelistResponse) ChangeURL(loc *domain.Location) string {
	return fmt.Sprintf("%s%s/change/", r.BasePath, loc.ID)
}

// FormResponse is an add or change form.
type FormResponse struct {
	Title    string
	BasePath string
	Action   string
	Record   *domain.Location
	Form     LocationForm
	Errors   map[string]string
	ReadOnly bool

	template string
}

func (r *FormResponse) Template() string { return r.template }

// Redirect is returned after a successful form submission.
type Redirect struct {
	URL string
}

func (r *Redirect) Template() string { return "" }
