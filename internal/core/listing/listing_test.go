package listing_test

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/frahmantamala/trackit/internal/core/listing"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestListing(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Listing Suite")
}

type item struct {
	Serial   string
	Brand    string
	Status   string
	Assigned bool
	Rank     int64
}

var schema = listing.Schema[item]{
	Filters: map[string]listing.Predicate[item]{
		"status":   listing.Equal(func(i item) string { return i.Status }),
		"brand":    listing.Contains(func(i item) string { return i.Brand }),
		"assigned": listing.Bool(func(i item) bool { return i.Assigned }),
	},
	Sorts: map[string]listing.Comparator[item]{
		"serial": listing.Strings(func(i item) string { return i.Serial }),
		"brand":  listing.Strings(func(i item) string { return i.Brand }),
		"rank":   listing.Ints(func(i item) int64 { return i.Rank }),
	},
	DefaultSort: "serial",
	Search:      func(i item) []string { return []string{i.Serial, i.Brand} },
}

func fixtures() []item {
	return []item{
		{Serial: "SN-003", Brand: "Dell", Status: "disponible", Rank: 2},
		{Serial: "SN-001", Brand: "HP", Status: "affecte", Assigned: true, Rank: 1},
		{Serial: "SN-002", Brand: "Dell", Status: "en_panne", Rank: 1},
		{Serial: "SN-004", Brand: "Lenovo", Status: "affecte", Assigned: true, Rank: 3},
		{Serial: "SN-005", Brand: "Hewlett-Packard", Status: "hors_service", Rank: 2},
	}
}

func serials(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Serial
	}
	return out
}

var _ = Describe("Schema", func() {
	var st listing.State

	BeforeEach(func() {
		st = listing.NewState(10)
	})

	Describe("Filter", func() {
		It("should narrow the list by status", func() {
			st.SetFilter("status", "AFFECTE")
			Expect(serials(schema.Filter(fixtures(), st))).To(Equal([]string{"SN-001", "SN-004"}))
		})

		It("should narrow the list by brand substring", func() {
			st.SetFilter("brand", "dell")
			Expect(serials(schema.Filter(fixtures(), st))).To(Equal([]string{"SN-003", "SN-002"}))
		})

		It("should narrow the list by a boolean flag", func() {
			st.SetFilter("assigned", "false")
			Expect(serials(schema.Filter(fixtures(), st))).To(ConsistOf("SN-003", "SN-002", "SN-005"))
		})

		It("should AND every active filter", func() {
			st.SetFilter("assigned", "true")
			st.SetFilter("brand", "hp")
			Expect(serials(schema.Filter(fixtures(), st))).To(Equal([]string{"SN-001"}))
		})

		It("should remove a filter set to an empty value", func() {
			st.SetFilter("status", "affecte")
			st.SetFilter("status", "  ")
			Expect(st.Filters).NotTo(HaveKey("status"))
			Expect(schema.Filter(fixtures(), st)).To(HaveLen(5))
		})

		It("should match the search text fuzzily and case-insensitively", func() {
			st.SetSearch("hwlt")
			Expect(serials(schema.Filter(fixtures(), st))).To(Equal([]string{"SN-005"}))
		})

		It("should match the search letters in order even when they are not adjacent", func() {
			st.SetSearch("dl")
			Expect(serials(schema.Filter(fixtures(), st))).To(Equal([]string{"SN-003", "SN-002"}))

			st.SetSearch("ld")
			Expect(serials(schema.Filter(fixtures(), st))).To(Equal([]string{"SN-005"}))
		})

		It("should ignore accents on either side", func() {
			screens := []item{{Serial: "EC-1", Brand: "Écran Plat"}, {Serial: "EC-2", Brand: "Clavier"}}
			st.SetSearch("ecran")
			Expect(serials(schema.Filter(screens, st))).To(Equal([]string{"EC-1"}))

			st.SetSearch("CLAVIÉR")
			Expect(serials(schema.Filter(screens, st))).To(Equal([]string{"EC-2"}))
		})

		It("should return nothing when no item matches", func() {
			st.SetSearch("zzz")
			Expect(schema.Filter(fixtures(), st)).To(BeEmpty())
		})
	})

	Describe("ToggleSort", func() {
		It("should sort ascending on the first click and reverse on the second", func() {
			st.ToggleSort("serial")
			Expect(st.SortDir).To(Equal(listing.Asc))
			Expect(serials(schema.Sort(fixtures(), st))).To(Equal([]string{"SN-001", "SN-002", "SN-003", "SN-004", "SN-005"}))

			st.ToggleSort("serial")
			Expect(st.SortDir).To(Equal(listing.Desc))
			Expect(serials(schema.Sort(fixtures(), st))).To(Equal([]string{"SN-005", "SN-004", "SN-003", "SN-002", "SN-001"}))

			st.ToggleSort("serial")
			Expect(st.SortDir).To(Equal(listing.Asc))
		})

		It("should restart ascending when the key changes", func() {
			st.ToggleSort("serial")
			st.ToggleSort("serial")
			st.ToggleSort("brand")
			Expect(st.SortKey).To(Equal("brand"))
			Expect(st.SortDir).To(Equal(listing.Asc))
		})

		It("should keep the fetched order for ties", func() {
			st.ToggleSort("rank")
			Expect(serials(schema.Sort(fixtures(), st))).To(Equal([]string{"SN-001", "SN-002", "SN-003", "SN-005", "SN-004"}))
		})

		It("should not modify the input slice", func() {
			in := fixtures()
			st.ToggleSort("serial")
			_ = schema.Sort(in, st)
			Expect(in[0].Serial).To(Equal("SN-003"))
		})
	})

	Describe("Paginate", func() {
		many := func(n int) []item {
			out := make([]item, n)
			for i := range out {
				out[i] = item{Serial: fmt.Sprintf("SN-%03d", i+1)}
			}
			return out
		}

		It("should slice the list into pages of the configured size", func() {
			rows, p := listing.Paginate(many(23), 2, 10)
			Expect(rows).To(HaveLen(10))
			Expect(rows[0].Serial).To(Equal("SN-011"))
			Expect(p.TotalPages).To(Equal(3))
			Expect(p.TotalItems).To(Equal(23))
			Expect(p.HasPrev).To(BeTrue())
			Expect(p.HasNext).To(BeTrue())

			rows, p = listing.Paginate(many(23), 3, 10)
			Expect(rows).To(HaveLen(3))
			Expect(p.HasNext).To(BeFalse())
		})

		It("should clamp a page past the end to the last page", func() {
			rows, p := listing.Paginate(many(12), 9, 5)
			Expect(p.Page).To(Equal(3))
			Expect(rows).To(HaveLen(2))
		})

		It("should return page 1 of 1 for an empty list", func() {
			rows, p := listing.Paginate([]item{}, 4, 10)
			Expect(rows).To(BeEmpty())
			Expect(p.Page).To(Equal(1))
			Expect(p.TotalPages).To(Equal(1))
		})
	})

	Describe("Apply", func() {
		It("should filter, then sort, then paginate", func() {
			st.PageSize = 1
			st.SetFilter("brand", "dell")
			st.ToggleSort("serial")
			res := schema.Apply(fixtures(), st)
			Expect(serials(res.Rows)).To(Equal([]string{"SN-002"}))
			Expect(res.Pagination.TotalItems).To(Equal(2))
		})

		It("should fall back to the default sort", func() {
			res := schema.Apply(fixtures(), st)
			Expect(res.Rows[0].Serial).To(Equal("SN-001"))
		})
	})

	Describe("ApplyQuery", func() {
		It("should parse search, filters, sort and page", func() {
			q := url.Values{}
			q.Set("search", "dell")
			q.Set("filter[status]", "disponible")
			q.Set("sort", "-brand")
			q.Set("page", "2")
			Expect(schema.ApplyQuery(&st, q)).To(Succeed())
			Expect(st.Search).To(Equal("dell"))
			Expect(st.Filters).To(HaveKeyWithValue("status", "disponible"))
			Expect(st.SortKey).To(Equal("brand"))
			Expect(st.SortDir).To(Equal(listing.Desc))
			Expect(st.Page).To(Equal(2))
		})

		It("should toggle on a repeated bare sort key", func() {
			q := url.Values{"sort": {"serial"}}
			Expect(schema.ApplyQuery(&st, q)).To(Succeed())
			Expect(schema.ApplyQuery(&st, q)).To(Succeed())
			Expect(st.SortDir).To(Equal(listing.Desc))
		})

		It("should reject unknown filters and sorts", func() {
			Expect(schema.ApplyQuery(&st, url.Values{"filter[color]": {"red"}})).To(MatchError(ContainSubstring("unknown filter")))
			Expect(schema.ApplyQuery(&st, url.Values{"sort": {"color"}})).To(MatchError(ContainSubstring("unknown sort")))
		})

		It("should reject an invalid page size", func() {
			err := schema.ApplyQuery(&st, url.Values{"page_size": {"0"}})
			Expect(err).To(HaveOccurred())
			Expect(strings.Contains(err.Error(), "page_size")).To(BeTrue())
		})

		It("should clear search and filters", func() {
			st.SetSearch("x")
			st.SetFilter("status", "affecte")
			Expect(schema.ApplyQuery(&st, url.Values{"clear": {"1"}})).To(Succeed())
			Expect(st.Search).To(BeEmpty())
			Expect(st.Filters).To(BeEmpty())
		})
	})
})
