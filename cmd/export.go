package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/auth"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export console lists as XLSX workbooks",
}

var exportMaterielsCmd = &cobra.Command{
	Use:   "materiels",
	Short: "Export the equipment list",
	Long:  `Sign in to the backend, list equipment with the given search and filters, and write the workbook`,
	Run: func(cmd *cobra.Command, args []string) {
		exportMateriels()
	},
}

var (
	exportUsername string
	exportPassword string
	exportOut      string
	exportSearch   string
	exportFilters  []string
	exportLocale   string
)

func exportMateriels() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	log := deps.Logger
	a := deps.App

	lang := exportLocale
	if lang == "" {
		lang = deps.Config.UI.DefaultLocale
	}
	ctx := internal.ContextWithLocale(context.Background(), lang)

	sess, err := a.Auth.Login(ctx, auth.LoginDTO{Username: exportUsername, Password: exportPassword}, lang)
	if err != nil {
		log.Error("login failed", "error", err)
		os.Exit(1)
	}
	ctx = internal.ContextWithPrincipal(ctx, sess.Principal())
	defer func() {
		if err := a.Auth.Logout(ctx); err != nil {
			log.Warn("logout failed", "error", err)
		}
	}()

	q := url.Values{}
	if exportSearch != "" {
		q.Set("search", exportSearch)
	}
	for _, f := range exportFilters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			log.Error("invalid filter, expected key=value", "filter", f)
			return
		}
		q.Set("filter["+key+"]", value)
	}
	if _, err := a.Materiels.List(ctx, q); err != nil {
		log.Error("failed to list equipment", "error", err)
		return
	}

	out := exportOut
	if out == "" {
		out = a.Materiels.Filename()
	} else if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, a.Materiels.Filename())
	}

	f, err := os.Create(out)
	if err != nil {
		log.Error("failed to create export file", "error", err)
		return
	}
	defer f.Close()

	if err := a.Materiels.Export(ctx, f); err != nil {
		log.Error("export failed", "error", err)
		return
	}
	log.Info("export written", "file", out)
}

func init() {
	exportMaterielsCmd.Flags().StringVarP(&exportUsername, "username", "u", "", "backend username")
	exportMaterielsCmd.Flags().StringVarP(&exportPassword, "password", "p", "", "backend password")
	exportMaterielsCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file or directory")
	exportMaterielsCmd.Flags().StringVar(&exportSearch, "search", "", "search text")
	exportMaterielsCmd.Flags().StringArrayVar(&exportFilters, "filter", nil, "filter as key=value, repeatable")
	exportMaterielsCmd.Flags().StringVar(&exportLocale, "locale", "", "workbook language (fr or en)")
	_ = exportMaterielsCmd.MarkFlagRequired("username")
	_ = exportMaterielsCmd.MarkFlagRequired("password")

	exportCmd.AddCommand(exportMaterielsCmd)
	rootCmd.AddCommand(exportCmd)
}
