package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/sharecare"
	"github.com/eringen/sharecare/facebook"
)

type configLoader func() (sharecare.Config, error)

func newServeCommand(load configLoader) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog and admin server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			app := sharecare.New(cfg)
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return <-errc
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR)")
	return cmd
}

func newScrapeCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape <url>",
		Short: "Ask Facebook to re-scrape a URL",
		Long:  `Send a scrape request to the Facebook Graph API so shared links pick up the page's current title, description and image.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			s := facebook.New(
				facebook.WithEndpoint(cfg.FacebookEndpoint),
				facebook.WithAccessToken(cfg.FacebookAccessToken),
				facebook.WithTimeout(cfg.ScrapeTimeout),
			)
			defer s.Close()

			if _, err := s.Scrape(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scrape requested for %s\n", args[0])
			return nil
		},
	}
}

func newLinksCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "links <slug>",
		Short: "Print the share links of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPage(cmd, load, args[0], func(app *sharecare.App, p sharecare.Post) error {
				for _, l := range app.Share.ShareLinks(cmd.Context(), p) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.Platform, l.URL)
				}
				return nil
			})
		},
	}
}

func newTagsCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <slug>",
		Short: "Print the Open Graph and Twitter meta tags of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPage(cmd, load, args[0], func(app *sharecare.App, p sharecare.Post) error {
				fmt.Fprintln(cmd.OutOrStdout(), app.Share.MetaTags(cmd.Context(), p))
				return nil
			})
		},
	}
}

func newShareCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "share <slug>",
		Short: "Print the resolved share data of a post as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPage(cmd, load, args[0], func(app *sharecare.App, p sharecare.Post) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(app.Share.ShareData(cmd.Context(), p))
			})
		},
	}
}

// withPage opens the data layer and runs fn with the post named by slug.
func withPage(cmd *cobra.Command, load configLoader, slug string, fn func(*sharecare.App, sharecare.Post) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	app := sharecare.New(cfg)
	defer app.Close()
	if err := app.Open(cmd.Context()); err != nil {
		return err
	}
	p, err := app.Page(slug)
	if errors.Is(err, sharecare.ErrNotFound) {
		return fmt.Errorf("no post with slug %q", slug)
	}
	if err != nil {
		return err
	}
	return fn(app, p)
}
