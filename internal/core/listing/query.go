package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ApplyQuery folds list-view query parameters into st:
//
//	search=<text>            free text
//	filter[<name>]=<value>   set a filter; empty value clears it
//	clear=1                  drop search and filters
//	sort=<key>               header click, see ToggleSort
//	sort=-<key> / +<key>     explicit direction
//	page=<n>, page_size=<n>
func (sc Schema[T]) ApplyQuery(st *State, q url.Values) error {
	if q.Get("clear") == "1" {
		st.ClearFilters()
	}
	if _, ok := q["search"]; ok {
		st.SetSearch(q.Get("search"))
	}
	for key, values := range q {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		name := key[7 : len(key)-1]
		if _, ok := sc.Filters[name]; !ok {
			return fmt.Errorf("unknown filter %q", name)
		}
		st.SetFilter(name, values[0])
	}
	if sort := q.Get("sort"); sort != "" {
		key, dir := sort, Direction("")
		switch sort[0] {
		case '-':
			key, dir = sort[1:], Desc
		case '+':
			key, dir = sort[1:], Asc
		}
		if _, ok := sc.Sorts[key]; !ok {
			return fmt.Errorf("unknown sort %q", key)
		}
		if dir == "" {
			st.ToggleSort(key)
		} else {
			st.SortKey, st.SortDir = key, dir
		}
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return fmt.Errorf("invalid page_size %q", v)
		}
		st.PageSize = n
		st.Page = 1
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page %q", v)
		}
		st.Page = n
	}
	return nil
}

var folder = cases.Fold()

// Equal matches when the field equals the filter value, ignoring case.
func Equal[T any](field func(T) string) Predicate[T] {
	return func(item T, value string) bool {
		return folder.String(field(item)) == folder.String(value)
	}
}

// Contains matches a case-insensitive substring of the field.
func Contains[T any](field func(T) string) Predicate[T] {
	return func(item T, value string) bool {
		return strings.Contains(folder.String(field(item)), folder.String(value))
	}
}

// Bool matches "true"/"false" style filter values against a flag.
func Bool[T any](field func(T) bool) Predicate[T] {
	return func(item T, value string) bool {
		want, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		return field(item) == want
	}
}

// Strings compares text fields with case folding.
func Strings[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(folder.String(field(a)), folder.String(field(b)))
	}
}

func Ints[T any](field func(T) int64) Comparator[T] {
	return func(a, b T) int {
		x, y := field(a), field(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
}

// Times sorts zero times first.
func Times[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		return field(a).Compare(field(b))
	}
}

// Since matches items dated on or after the YYYY-MM-DD filter value.
func Since[T any](field func(T) time.Time) Predicate[T] {
	return func(item T, value string) bool {
		from, err := time.Parse("2006-01-02", value)
		if err != nil {
			return false
		}
		t := field(item)
		return !t.IsZero() && !t.Before(from)
	}
}

// Until matches items dated on or before the YYYY-MM-DD filter value,
// the whole day included.
func Until[T any](field func(T) time.Time) Predicate[T] {
	return func(item T, value string) bool {
		to, err := time.Parse("2006-01-02", value)
		if err != nil {
			return false
		}
		t := field(item)
		return !t.IsZero() && t.Before(to.AddDate(0, 0, 1))
	}
}

// Title renders enum values for display in the given language.
func Title(lang language.Tag, s string) string {
	return cases.Title(lang).String(strings.ReplaceAll(s, "_", " "))
}
