// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads per-site cookies from a directory of plain-text files.
// Each file in the directory represents one site: the filename is the host
// (e.g. "medium.com") and the file contents (trimmed) are the Cookie header
// value to send when fetching pages from that host or its subdomains. This
// is how paywalled or login-gated bookmarks get enriched without baking
// credentials into config files.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads all files in dir and returns a map of host to trimmed Cookie
// header value. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading cookies directory %s: %w", dir, err)
	}

	cookies := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read cookie file %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			cookies[name] = value
		}
	}

	return cookies, nil
}
