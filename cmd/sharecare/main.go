package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/sharecare"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the sharecare command tree.
func NewRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "sharecare",
		Short: "Social sharing metadata for a small blog",
		Long: `sharecare serves a blog whose posts carry Open Graph and Twitter Card
tags, share links, and Facebook cache clearing on publish.

Settings come from the environment (and .env), optionally layered over a
YAML file given with --config.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (optional)")

	load := func() (sharecare.Config, error) {
		return sharecare.LoadConfig(configFile)
	}

	root.AddCommand(
		newServeCommand(load),
		newScrapeCommand(load),
		newLinksCommand(load),
		newTagsCommand(load),
		newShareCommand(load),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sharecare version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sharecare %s\n", version)
		},
	}
}
