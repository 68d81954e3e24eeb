// Package navigation maps browser paths to console pages and decides who
// may see them.
package navigation

import (
	"strings"

	errors "github.com/frahmantamala/trackit/internal"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type Route struct {
	Path   string   `json:"path"`
	Page   string   `json:"page"`
	Public bool     `json:"public,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	// Sidebar entries are listed in this order.
	Sidebar bool `json:"sidebar"`
}

// Routes is the console route table.
var Routes = []Route{
	{Path: LoginPath, Page: "login", Public: true},
	{Path: DashboardPath, Page: "dashboard", Sidebar: true},
	{Path: "/materiels", Page: "materiels", Sidebar: true},
	{Path: "/incidents", Page: "incidents", Sidebar: true},
	{Path: "/inventaires", Page: "inventaires", Sidebar: true},
	{Path: "/salles", Page: "salles", Sidebar: true},
	{Path: "/positions", Page: "positions", Sidebar: true},
	{Path: "/affectations", Page: "affectations", Sidebar: true},
	{Path: "/personnes", Page: "personnes", Sidebar: true},
	{Path: "/utilisateurs", Page: "utilisateurs", Roles: []string{"admin"}, Sidebar: true},
}

func (r Route) allows(p *errors.Principal) bool {
	if len(r.Roles) == 0 {
		return true
	}
	if p == nil {
		return false
	}
	for _, role := range r.Roles {
		if role == p.Role {
			return true
		}
	}
	return false
}

// Lookup finds the route for path. Trailing slashes and sub-paths such as
// /salles/12 resolve to their page.
func Lookup(path string) (Route, bool) {
	path = "/" + strings.Trim(path, "/")
	for _, r := range Routes {
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			return r, true
		}
	}
	return Route{}, false
}

type Decision struct {
	Path     string `json:"path"`
	Page     string `json:"page,omitempty"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Guard decides whether p may open path. p is nil for anonymous visitors.
func Guard(path string, p *errors.Principal) Decision {
	d := Decision{Path: path}
	route, ok := Lookup(path)

	switch {
	case ok && route.Public:
		if p != nil {
			d.Redirect = DashboardPath
			return d
		}
	case p == nil:
		d.Redirect = LoginPath
		return d
	case !ok:
		d.Redirect = DashboardPath
		return d
	case !route.allows(p):
		d.Redirect = DashboardPath
		return d
	}

	d.Page = route.Page
	d.Allowed = true
	return d
}

type Item struct {
	Path   string `json:"path"`
	Page   string `json:"page"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Translator is the part of the locale bundle the sidebar needs.
type Translator interface {
	T(lang, id string, data map[string]interface{}) string
}

// Sidebar lists the pages p may open, labelled in lang. The entry owning
// current is marked active.
func Sidebar(p *errors.Principal, lang, current string, tr Translator) []Item {
	active, _ := Lookup(current)
	items := make([]Item, 0, len(Routes))
	for _, r := range Routes {
		if !r.Sidebar || !r.allows(p) {
			continue
		}
		items = append(items, Item{
			Path:   r.Path,
			Page:   r.Page,
			Label:  tr.T(lang, "Nav."+r.Page, nil),
			Active: r.Path == active.Path,
		})
	}
	return items
}
