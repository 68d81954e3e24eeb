package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/trackit/api"
	"github.com/frahmantamala/trackit/internal/app"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
	"github.com/frahmantamala/trackit/internal/navigation"
	"github.com/frahmantamala/trackit/internal/transport/rest"
	"github.com/frahmantamala/trackit/pkg/logger"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the console pages and HTTP routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes()
	},
}

func printRoutes() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// the session store is never queried while listing routes
	a, err := app.New(cfg, nil, pagecache.NewMemoryStore(cfg.Cache.TTL), logger.Discard())
	if err != nil {
		return err
	}
	router := a.Router(rest.NewHealthHandler(nil), api.Document)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tPATH\tROLES\tSIDEBAR")
	for _, route := range navigation.Routes {
		roles := strings.Join(route.Roles, ",")
		if route.Public {
			roles = "public"
		} else if roles == "" {
			roles = "any"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", route.Page, route.Path, roles, route.Sidebar)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "METHOD\tROUTE")
	err = rest.Walk(router, func(method, route string) {
		fmt.Fprintf(w, "%s\t%s\n", method, route)
	})
	if err != nil {
		return err
	}
	return w.Flush()
}
