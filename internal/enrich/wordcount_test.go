// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// words builds a paragraph of n distinct words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(parts, " ")
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, countWords(""))
	assert.Equal(t, 3, countWords("one two three"))
	assert.Equal(t, 2, countWords("it's well-known"))
	assert.Equal(t, 4, countWords("  spaced\tout\nwords here  "))
}

func TestExtractWordCountArticleParagraphs(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<nav><p>%s</p></nav>
		<article><p>%s</p><p>%s</p></article>
	</body></html>`, words(30), words(80), words(70))
	doc := docFrom(t, html)

	count, method := extractWordCount(doc)
	assert.Equal(t, "article_p", method)
	assert.Equal(t, 150, count)
}

func TestExtractWordCountMainParagraphs(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<main><p>%s</p></main>
		<footer>%s</footer>
	</body></html>`, words(200), words(50))
	doc := docFrom(t, html)

	count, method := extractWordCount(doc)
	assert.Equal(t, "main_p", method)
	assert.Equal(t, 200, count)
}

func TestExtractWordCountJSONLD(t *testing.T) {
	html := fmt.Sprintf(`<html><head>
		<script type="application/ld+json">{"@type":"Article","articleBody":%q}</script>
	</head><body><p>%s</p></body></html>`, words(300), words(10))
	doc := docFrom(t, html)

	count, method := extractWordCount(doc)
	assert.Equal(t, "jsonld", method)
	assert.Equal(t, 300, count)
}

func TestExtractWordCountShortArticleFallsBack(t *testing.T) {
	// article_p is under the trusted threshold; the largest non-full-doc
	// candidate (article_tag, which includes the headline div) wins.
	html := fmt.Sprintf(`<html><body>
		<article><div>%s</div><p>%s</p></article>
	</body></html>`, words(40), words(50))
	doc := docFrom(t, html)

	count, method := extractWordCount(doc)
	assert.Equal(t, "article_tag", method)
	assert.Equal(t, 90, count)
}

func TestExtractWordCountFullDocOutlierGuard(t *testing.T) {
	// No article/main: only the full-document counts remain, and the body
	// count is dominated by non-paragraph chrome, so the runner-up wins.
	html := fmt.Sprintf(`<html><body>
		<p>%s</p>
		<div>%s</div>
	</body></html>`, words(100), words(1000))
	doc := docFrom(t, html)

	count, method := extractWordCount(doc)
	assert.Equal(t, "all_p", method)
	assert.Equal(t, 100, count)
}

func TestExtractWordCountBoilerplateStripped(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<div class="newsletter-signup">%s</div>
		<div>%s</div>
	</body></html>`, words(5000), words(100))
	doc := docFrom(t, html)

	count, method := extractWordCount(doc)
	assert.Equal(t, "body_full", method)
	assert.Equal(t, 100, count)
}

func TestExtractWordCountEmptyPage(t *testing.T) {
	doc := docFrom(t, `<html><body></body></html>`)
	count, method := extractWordCount(doc)
	assert.Zero(t, count)
	assert.Empty(t, method)
}
