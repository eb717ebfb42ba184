// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bookmark-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evanzant/bookmark-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedCookies holds per-site Cookie header values loaded from .secrets/
// at startup, keyed by host.
var loadedCookies map[string]string

// rootCmd is the base command for the bookmark-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "bookmark-engine",
	Short: "Organize bookmark exports into curated reading outlines",
	Long: `bookmark-engine organizes personal bookmark exports. It extracts records
from a hierarchical outline document, recovers true URLs by joining against
an authoritative CSV export, expands link-shortener redirects, enriches
records with publish dates and word counts fetched from the live pages, and
writes spreadsheets or HTML fragments for manual curation.

Each stage is a subcommand: extract, reconcile, expand, enrich, and export.
Stages run strictly one URL at a time with polite delays; this is an
operator-supervised tool, not a crawler.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedCookies = c
		if len(c) > 0 {
			hosts := make([]string, 0, len(c))
			for h := range c {
				hosts = append(hosts, h)
			}
			sort.Strings(hosts)
			fmt.Fprintf(os.Stderr, "Loaded cookies for: %v\n", hosts)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bookmark-engine.yaml or ~/.config/bookmark-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bookmark-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bookmark-engine"))
		}
	}

	viper.SetEnvPrefix("BOOKMARK_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("expand.domains", []string{"flip.it"})

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
