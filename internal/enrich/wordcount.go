// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// wordPattern approximates "words" the way the source spreadsheets count
// them: runs of letters, digits, apostrophes, and hyphens.
var wordPattern = regexp.MustCompile(`[\w'-]+`)

// boilerplatePattern flags class/id markers of chrome that should never
// count toward an article's length.
var boilerplatePattern = regexp.MustCompile(`(?i)(^|[-_\s])(ad|ads|advert|advertisement|sponsor|promo|related|newsletter|footer|sidebar|share|social|cookie|banner|recommend|trending|outbrain|taboola)($|[-_\s])`)

// preferredMethods are trusted extraction methods: when one of them finds
// a plausibly article-sized text (minPreferredWords), its count wins over
// larger but noisier candidates.
var preferredMethods = []string{"article_p", "main_p", "jsonld"}

const minPreferredWords = 120

// fullDocMethods count everything on the page and only serve as a last
// resort.
var fullDocMethods = map[string]bool{"all_p": true, "body_full": true}

type countCandidate struct {
	words  int
	method string
}

// extractWordCount estimates the article's word count from the most
// article-like text region it can find. Returns (0, "") when the page has
// no countable text.
func extractWordCount(doc *goquery.Document) (int, string) {
	var candidates []countCandidate

	add := func(text, method string) {
		if n := countWords(text); n > 0 {
			candidates = append(candidates, countCandidate{words: n, method: method})
		}
	}

	add(jsonLDArticleText(doc), "jsonld")

	if article := doc.Find("article").First(); article.Length() > 0 {
		add(joinedText(article.Find("p")), "article_p")
		add(article.Text(), "article_tag")
	}
	if main := doc.Find("main").First(); main.Length() > 0 {
		add(joinedText(main.Find("p")), "main_p")
	}
	add(joinedText(doc.Find("p")), "all_p")

	// Body candidates come last because stripping boilerplate mutates the
	// document in place.
	stripBoilerplate(doc)
	if body := doc.Find("body").First(); body.Length() > 0 {
		add(body.Text(), "body_full")
	}

	if len(candidates) == 0 {
		return 0, ""
	}

	byMethod := make(map[string]int, len(candidates))
	for _, c := range candidates {
		if _, ok := byMethod[c.method]; !ok {
			byMethod[c.method] = c.words
		}
	}
	for _, method := range preferredMethods {
		if byMethod[method] >= minPreferredWords {
			return byMethod[method], method
		}
	}

	best := countCandidate{}
	for _, c := range candidates {
		if !fullDocMethods[c.method] && c.words > best.words {
			best = c
		}
	}
	if best.words > 0 {
		return best.words, best.method
	}

	// Only full-document counts remain. If the largest dwarfs the
	// runner-up it is almost certainly counting navigation and comments,
	// so take the runner-up.
	top, second := countCandidate{}, countCandidate{}
	for _, c := range candidates {
		switch {
		case c.words > top.words:
			second = top
			top = c
		case c.words > second.words:
			second = c
		}
	}
	if second.words > 0 && top.words > second.words*8/5 && top.words-second.words > 500 {
		return second.words, second.method
	}
	return top.words, top.method
}

// jsonLDArticleText returns the longest article-like text found in ld+json
// blocks (articleBody, text, description).
func jsonLDArticleText(doc *goquery.Document) string {
	best := ""
	bestWords := 0
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, node *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(node.Text()), &data); err != nil {
			return
		}
		collectJSONLDTexts(data, func(text string) {
			if n := countWords(text); n > bestWords {
				best, bestWords = text, n
			}
		})
	})
	return best
}

var jsonLDTextKeys = map[string]bool{"articleBody": true, "text": true, "description": true}

func collectJSONLDTexts(data interface{}, visit func(string)) {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if jsonLDTextKeys[key] {
				if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
					visit(normalizeSpace(s))
					continue
				}
			}
			collectJSONLDTexts(value, visit)
		}
	case []interface{}:
		for _, item := range v {
			collectJSONLDTexts(item, visit)
		}
	}
}

// stripBoilerplate removes script/style/nav-type elements and anything
// whose class or id marks it as page chrome. Destructive.
func stripBoilerplate(doc *goquery.Document) {
	doc.Find("script, style, noscript, svg, iframe, nav, aside, footer, form").Remove()
	doc.Find("body *").Each(func(_ int, node *goquery.Selection) {
		class, _ := node.Attr("class")
		id, _ := node.Attr("id")
		marker := strings.TrimSpace(class + " " + id)
		if marker != "" && boilerplatePattern.MatchString(marker) {
			node.Remove()
		}
	})
}

func joinedText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, node *goquery.Selection) {
		if t := normalizeSpace(node.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func countWords(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
