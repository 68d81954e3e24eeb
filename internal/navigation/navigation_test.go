package navigation_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/navigation"
)

func TestNavigation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Navigation Suite")
}

var _ = Describe("Navigation", func() {
	admin := &errors.Principal{Role: "admin"}
	user := &errors.Principal{Role: "user"}

	DescribeTable("Guard",
		func(path string, p *errors.Principal, allowed bool, redirect string) {
			d := navigation.Guard(path, p)
			Expect(d.Allowed).To(Equal(allowed))
			Expect(d.Redirect).To(Equal(redirect))
		},
		Entry("anonymous on a page", "/materiels", nil, false, "/login"),
		Entry("anonymous on login", "/login", nil, true, ""),
		Entry("signed in on login", "/login", user, false, "/dashboard"),
		Entry("user on a page", "/materiels", user, true, ""),
		Entry("user on a sub-path", "/salles/12/", user, true, ""),
		Entry("user on the admin page", "/utilisateurs", user, false, "/dashboard"),
		Entry("admin on the admin page", "/utilisateurs", admin, true, ""),
		Entry("unknown path", "/nowhere", user, false, "/dashboard"),
		Entry("root", "/", admin, false, "/dashboard"),
		Entry("anonymous on an unknown path", "/nowhere", nil, false, "/login"),
	)

	Describe("Sidebar", func() {
		var bundle *locale.Bundle

		BeforeEach(func() {
			var err error
			bundle, err = locale.New("fr")
			Expect(err).NotTo(HaveOccurred())
		})

		pages := func(items []navigation.Item) []string {
			out := make([]string, len(items))
			for i, it := range items {
				out[i] = it.Page
			}
			return out
		}

		It("should hide admin entries from plain users", func() {
			items := navigation.Sidebar(user, "fr", "/materiels", bundle)
			Expect(pages(items)).NotTo(ContainElement("utilisateurs"))
			Expect(pages(items)).NotTo(ContainElement("login"))
			Expect(items[0].Page).To(Equal("dashboard"))
		})

		It("should show every entry to admins, labelled and marked active", func() {
			items := navigation.Sidebar(admin, "en", "/salles/3", bundle)
			Expect(pages(items)).To(ContainElement("utilisateurs"))
			for _, it := range items {
				Expect(it.Active).To(Equal(it.Page == "salles"))
				if it.Page == "salles" {
					Expect(it.Label).To(Equal("Rooms"))
				}
			}
		})
	})
})
