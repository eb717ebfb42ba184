package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evanzant/bookmark-engine/internal/enrich"
	"github.com/evanzant/bookmark-engine/internal/export"
	"github.com/evanzant/bookmark-engine/internal/refdata"
	"github.com/evanzant/bookmark-engine/pkg/types"
)

const (
	defaultEnrichDelay = 2 * time.Second
	defaultHeartbeat   = 25

	// A number of publishers refuse obviously-scripted agents, so
	// enrichment fetches identify as a desktop browser.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Add publish dates and word counts fetched from the live pages",
	Long: `Enrich fetches each record's page and extracts a publication date and an
approximate word count, writing them alongside per-record status columns.
Records already carrying both values are skipped. Extraction is
best-effort: a page without usable metadata leaves the field empty, and a
failed fetch records its status and never aborts the batch.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().String("csv", "", "input CSV (required)")
	enrichCmd.Flags().StringP("output", "o", "", "output CSV (required)")
	enrichCmd.Flags().Duration("delay", 0, "delay between consecutive fetches (default 2s)")
	enrichCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	enrichCmd.Flags().Int("heartbeat", 0, "progress line every N fetches (default 25)")

	enrichCmd.MarkFlagRequired("csv")
	enrichCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	outputPath, _ := cmd.Flags().GetString("output")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	heartbeat, _ := cmd.Flags().GetInt("heartbeat")

	if delay == 0 {
		delay = defaultEnrichDelay
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if heartbeat == 0 {
		heartbeat = defaultHeartbeat
	}

	cfg := types.EnrichConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: browserUserAgent,
		},
		Delay:          delay,
		HeartbeatEvery: heartbeat,
		Cookies:        loadedCookies,
	}

	records, err := refdata.LoadRaindrop(csvPath)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	enrich.EnrichBatch(cmd.Context(), client, records, cfg, os.Stdout)

	return export.WriteEnrichedFile(outputPath, records)
}
