// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches each record's page and extracts a publication
// date and an approximate word count from the content. Both are
// best-effort: a page without extractable metadata leaves the fields
// unset and records a status, and a failed fetch never aborts the batch.
// Fetches run strictly one at a time with a polite delay; this is a
// human-triggered tool working through tens to low hundreds of URLs.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/evanzant/bookmark-engine/internal/httputil"
	"github.com/evanzant/bookmark-engine/pkg/types"
)

// Per-record status values recorded on DateStatus/CountStatus.
const (
	StatusNoURL        = "no_url"
	StatusCached       = "cached"
	StatusTimeout      = "timeout"
	StatusRequestError = "request_error"
	StatusNoDate       = "no_date_found"
	StatusNoText       = "no_text_found"
	StatusSuccess      = "success"
)

// Summary holds the outcome of an enrichment run.
type Summary struct {
	Enriched int
	Skipped  int
	Failed   int
}

// Total returns the number of records processed.
func (s Summary) Total() int { return s.Enriched + s.Skipped + s.Failed }

// EnrichBatch processes records in order, mutating each in place. Records
// without a link, or already carrying both a date and a word count from an
// earlier run, are skipped. A heartbeat line is printed every
// cfg.HeartbeatEvery fetches.
func EnrichBatch(ctx context.Context, client *http.Client, records []types.Bookmark, cfg types.EnrichConfig, w io.Writer) Summary {
	var summary Summary
	fetched := 0
	start := time.Now()

	for i := range records {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "warning: interrupted after %d records: %v\n", i, err)
			break
		}

		rec := &records[i]
		switch {
		case rec.Link == "":
			rec.DateStatus, rec.CountStatus = StatusNoURL, StatusNoURL
			summary.Skipped++
			continue
		case rec.Published != "" && rec.WordCount > 0:
			rec.DateStatus, rec.CountStatus = StatusCached, StatusCached
			summary.Skipped++
			continue
		}

		if fetched > 0 && cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
		fetched++

		fmt.Fprintf(w, "[%d/%d] fetching %s\n", i+1, len(records), truncateURL(rec.Link))
		if EnrichRecord(ctx, client, rec, cfg) {
			summary.Enriched++
		} else {
			summary.Failed++
		}
		if rec.DateStatus == StatusNoDate {
			fmt.Fprintf(w, "  no date for: %s\n", truncate(rec.Title, 60))
		}

		if cfg.HeartbeatEvery > 0 && fetched%cfg.HeartbeatEvery == 0 {
			elapsed := time.Since(start)
			avg := elapsed / time.Duration(fetched)
			remaining := len(records) - (i + 1)
			fmt.Fprintf(w, "heartbeat: %d/%d elapsed=%s eta=%s\n",
				i+1, len(records), elapsed.Round(time.Second), (avg * time.Duration(remaining)).Round(time.Second))
		}
	}

	fmt.Fprintf(w, "\nEnrichment summary: %d enriched, %d skipped, %d failed (total: %d)\n",
		summary.Enriched, summary.Skipped, summary.Failed, summary.Total())
	return summary
}

// EnrichRecord fetches one record's page and fills Published and
// WordCount where extraction succeeds. It returns false when the fetch
// itself failed; extraction gaps on a fetched page still count as success
// with the per-field status explaining what was missing.
func EnrichRecord(ctx context.Context, client *http.Client, rec *types.Bookmark, cfg types.EnrichConfig) bool {
	doc, status := fetchDocument(ctx, client, rec.Link, cfg)
	if status != StatusSuccess {
		rec.DateStatus, rec.CountStatus = status, status
		return false
	}

	if date, method := extractDate(doc); date != "" {
		rec.Published = date
		rec.DateStatus = method
	} else {
		rec.DateStatus = StatusNoDate
	}

	if wc, method := extractWordCount(doc); wc > 0 {
		rec.WordCount = wc
		rec.CountStatus = StatusSuccess
		rec.CountMethod = method
	} else {
		rec.CountStatus = StatusNoText
	}
	return true
}

// fetchDocument GETs the URL with browser-like headers and parses the
// body. The returned status mirrors the spreadsheet status column:
// success, timeout, request_error, or http_NNN.
func fetchDocument(ctx context.Context, client *http.Client, rawURL string, cfg types.EnrichConfig) (*goquery.Document, string) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, StatusRequestError
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if cookie := cookieForURL(cfg.Cookies, rawURL); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := httputil.Do(ctx, client, req, 0)
	if err != nil {
		if isTimeout(err) {
			return nil, StatusTimeout
		}
		return nil, StatusRequestError
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Sprintf("http_%d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, StatusRequestError
	}
	return doc, StatusSuccess
}

// cookieForURL returns the Cookie header value for the URL's host, matched
// by host suffix ("example.com" also covers "www.example.com").
func cookieForURL(cookies map[string]string, rawURL string) string {
	if len(cookies) == 0 {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for domain, value := range cookies {
		domain = strings.ToLower(strings.TrimPrefix(domain, "."))
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return value
		}
	}
	return ""
}

func isTimeout(err error) bool {
	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func truncateURL(u string) string { return truncate(u, 90) }

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
