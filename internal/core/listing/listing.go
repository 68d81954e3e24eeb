// Package listing runs the in-memory filter, sort and paginate pipeline the
// console pages apply to the lists they fetched from the backend.
package listing

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"

	DefaultPageSize = 10
)

// Predicate reports whether item matches the raw filter value.
type Predicate[T any] func(item T, value string) bool

// Comparator orders two items ascending, like strings.Compare.
type Comparator[T any] func(a, b T) int

// Schema declares what a page can filter, sort and search on.
type Schema[T any] struct {
	Filters     map[string]Predicate[T]
	Sorts       map[string]Comparator[T]
	DefaultSort string
	DefaultDir  Direction
	// Search returns the texts the free-text box looks into.
	Search func(item T) []string
}

type Modal struct {
	Kind string `json:"kind"`
	Key  string `json:"key,omitempty"`
}

type State struct {
	Search   string            `json:"search,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
	SortKey  string            `json:"sort_key,omitempty"`
	SortDir  Direction         `json:"sort_dir,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Modal    *Modal            `json:"modal,omitempty"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

type Result[T any] struct {
	Rows       []T        `json:"rows"`
	Pagination Pagination `json:"pagination"`
}

func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{Page: 1, PageSize: pageSize}
}

// ToggleSort sorts by key ascending, or flips the direction when key is
// already the active sort.
func (s *State) ToggleSort(key string) {
	if s.SortKey == key {
		if s.SortDir == Desc {
			s.SortDir = Asc
		} else {
			s.SortDir = Desc
		}
		return
	}
	s.SortKey = key
	s.SortDir = Asc
}

// SetFilter sets or, for an empty value, clears a filter. The page resets.
func (s *State) SetFilter(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(s.Filters, name)
	} else {
		if s.Filters == nil {
			s.Filters = make(map[string]string)
		}
		s.Filters[name] = value
	}
	s.Page = 1
}

func (s *State) ClearFilters() {
	s.Filters = nil
	s.Search = ""
	s.Page = 1
}

func (s *State) SetSearch(q string) {
	s.Search = strings.TrimSpace(q)
	s.Page = 1
}

func (sc Schema[T]) Filter(items []T, st State) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if sc.matches(item, st) {
			out = append(out, item)
		}
	}
	return out
}

func (sc Schema[T]) matches(item T, st State) bool {
	for name, value := range st.Filters {
		pred, ok := sc.Filters[name]
		if !ok {
			continue
		}
		if !pred(item, value) {
			return false
		}
	}
	if st.Search == "" || sc.Search == nil {
		return true
	}
	for _, text := range sc.Search(item) {
		if fuzzy.MatchNormalizedFold(st.Search, text) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy. Ties keep their fetched order.
func (sc Schema[T]) Sort(items []T, st State) []T {
	out := slices.Clone(items)
	key, dir := st.SortKey, st.SortDir
	if key == "" {
		key, dir = sc.DefaultSort, sc.DefaultDir
	}
	cmp, ok := sc.Sorts[key]
	if !ok {
		return out
	}
	if dir == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Apply filters, sorts, then paginates items.
func (sc Schema[T]) Apply(items []T, st State) Result[T] {
	rows, p := Paginate(sc.Sort(sc.Filter(items, st), st), st.Page, st.PageSize)
	return Result[T]{Rows: rows, Pagination: p}
}

// Paginate returns the 1-based page of items. A page past the end clamps to
// the last one; an empty list is page 1 of 1.
func Paginate[T any](items []T, page, size int) ([]T, Pagination) {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := min(start+size, total)
	rows := make([]T, 0, end-start)
	rows = append(rows, items[start:end]...)
	return rows, Pagination{
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}

// Keys lists the declared filter and sort names, for the page header.
func (sc Schema[T]) Keys() (filters, sorts []string) {
	for k := range sc.Filters {
		filters = append(filters, k)
	}
	for k := range sc.Sorts {
		sorts = append(sorts, k)
	}
	slices.Sort(filters)
	slices.Sort(sorts)
	return filters, sorts
}
