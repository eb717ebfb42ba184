package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evanzant/bookmark-engine/internal/expand"
	"github.com/evanzant/bookmark-engine/pkg/types"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultExpandDelay = 500 * time.Millisecond
	defaultUserAgent   = "bookmark-engine/0.1"
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Expand link-shortener URLs in a CSV by following redirects",
	Long: `Expand rewrites the URL column of a CSV: URLs whose host matches a
configured shortener domain (default flip.it) are fetched once with
redirects followed and replaced by their final destination. Every other
URL, and every other column, passes through byte-for-byte. A failed fetch
keeps the original URL and never aborts the batch.`,
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().String("csv", "", "input CSV (required)")
	expandCmd.Flags().StringP("output", "o", "", "output CSV (required)")
	expandCmd.Flags().StringArray("domain", nil, "shortener domain to expand (repeatable; default flip.it)")
	expandCmd.Flags().Bool("all", false, "expand every URL regardless of domain")
	expandCmd.Flags().Duration("delay", 0, "delay between consecutive requests (default 500ms)")
	expandCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	expandCmd.MarkFlagRequired("csv")
	expandCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	outputPath, _ := cmd.Flags().GetString("output")
	domains, _ := cmd.Flags().GetStringArray("domain")
	all, _ := cmd.Flags().GetBool("all")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if len(domains) == 0 {
		domains = viper.GetStringSlice("expand.domains")
	}
	if delay == 0 {
		delay = defaultExpandDelay
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.ExpandConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Domains: domains,
		All:     all,
		Delay:   delay,
	}

	in, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", csvPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}

	client := &http.Client{Timeout: cfg.Timeout}
	_, err = expand.ExpandCSV(cmd.Context(), client, in, out, cfg, os.Stdout)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outputPath, err)
	}
	return nil
}
