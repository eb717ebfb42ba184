// Package expand rewrites link-shortener URLs (flip.it and friends) to
// their final destination by following HTTP redirects. Only URLs whose
// host matches a configured shortener domain are touched; everything else
// passes through byte-for-byte. A failed resolution keeps the original
// URL and is reported per record, so one dead shortener never aborts the
// batch.
package expand

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evanzant/bookmark-engine/internal/httputil"
	"github.com/evanzant/bookmark-engine/internal/refdata"
	"github.com/evanzant/bookmark-engine/pkg/types"
)

// Summary holds the outcome of an expansion run.
type Summary struct {
	Expanded int
	Passed   int
	Failed   int
}

// Total returns the number of rows processed.
func (s Summary) Total() int { return s.Expanded + s.Passed + s.Failed }

// Matches reports whether rawURL's host falls under one of the shortener
// domains. Matching is by host suffix, so "flip.it" also covers
// "go.flip.it". An unparseable URL never matches.
func Matches(rawURL string, domains []string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Resolve follows redirects for rawURL and returns the final URL. The
// client's redirect policy does the following; Resolve just reads where
// the request ended up. Non-2xx final responses are errors so the caller
// keeps the original link.
func Resolve(ctx context.Context, client *http.Client, rawURL string, cfg types.ExpandConfig) (string, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.Do(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}
	return resp.Request.URL.String(), nil
}

// ExpandCSV streams a CSV from r to w, rewriting the URL column of rows
// whose link matches a shortener domain (or every row when cfg.All is
// set). All other columns and rows are written through unchanged. Per-row
// resolution failures are reported on progress and keep the original URL;
// only structural CSV errors abort.
func ExpandCSV(ctx context.Context, client *http.Client, r io.Reader, w io.Writer, cfg types.ExpandConfig, progress io.Writer) (Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return Summary{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) < 2 {
		return Summary{}, fmt.Errorf("CSV is empty (need a header row and at least one data row)")
	}

	header, data := rows[0], rows[1:]
	urlCol := refdata.DetectURLColumn(header, data)
	if urlCol < 0 {
		return Summary{}, fmt.Errorf("CSV has no url column")
	}

	var summary Summary
	requests := 0
	for i, row := range data {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		original := ""
		if urlCol < len(row) {
			original = strings.TrimSpace(row[urlCol])
		}
		if original == "" || (!cfg.All && !Matches(original, cfg.Domains)) {
			summary.Passed++
			continue
		}

		if requests > 0 && cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
		requests++

		fmt.Fprintf(progress, "[%d/%d] resolving: %s\n", i+1, len(data), original)
		final, err := Resolve(ctx, client, original, cfg)
		if err != nil {
			fmt.Fprintf(progress, "  warning: %v (keeping original)\n", err)
			summary.Failed++
			continue
		}
		if final != original {
			fmt.Fprintf(progress, "  -> %s\n", final)
			row[urlCol] = final
		}
		summary.Expanded++
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return summary, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range data {
		if err := cw.Write(row); err != nil {
			return summary, fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return summary, fmt.Errorf("flushing CSV: %w", err)
	}

	fmt.Fprintf(progress, "\nExpansion summary: %d expanded, %d passed through, %d failed (total: %d)\n",
		summary.Expanded, summary.Passed, summary.Failed, summary.Total())
	return summary, nil
}

// ExpandRecords rewrites the links of in-memory records the same way
// ExpandCSV rewrites rows. Used when expansion runs as part of a larger
// pipeline instead of CSV-to-CSV.
func ExpandRecords(ctx context.Context, client *http.Client, records []types.Bookmark, cfg types.ExpandConfig, progress io.Writer) Summary {
	var summary Summary
	requests := 0
	for i := range records {
		link := records[i].Link
		if link == "" || (!cfg.All && !Matches(link, cfg.Domains)) {
			summary.Passed++
			continue
		}
		if requests > 0 && cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
		requests++

		final, err := Resolve(ctx, client, link, cfg)
		if err != nil {
			fmt.Fprintf(progress, "warning: %s: %v (keeping original)\n", records[i].Title, err)
			summary.Failed++
			continue
		}
		records[i].Link = final
		summary.Expanded++
	}
	return summary
}
