// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tags parses the "outl:" section-assignment convention used in
// raindrop exports. A tag like "_outl:VII-A" or "outl:VIIa" names the
// outline subsection (roman numeral section, letter subsection) an article
// belongs to. Anything without the outl: prefix is not a section tag.
package tags

import (
	"fmt"
	"regexp"
	"strings"
)

// outlPattern matches "outl:IVb", "_outl:IV-b", "_outl:iv-B" and friends.
// The roman part is greedy over roman letters only, so the trailing
// subsection letter is never swallowed.
var outlPattern = regexp.MustCompile(`^_?outl:([IVXivx]+)-?([A-Za-z])$`)

// romanValues covers sections I through X, the full range the outline uses.
var romanValues = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
}

// SectionTag is a parsed outline assignment.
type SectionTag struct {
	// Roman is the section numeral in canonical uppercase form (e.g. "IV").
	Roman string

	// Number is the integer value of Roman.
	Number int

	// Letter is the subsection letter in lowercase (e.g. "b").
	Letter string
}

// Parse extracts a SectionTag from a single raw tag. The second return
// value is false when the tag is not an outl: assignment or names an
// unknown roman numeral; that is "no tag assigned", not an error.
func Parse(raw string) (SectionTag, bool) {
	m := outlPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return SectionTag{}, false
	}
	roman := strings.ToUpper(m[1])
	n, ok := romanValues[roman]
	if !ok {
		return SectionTag{}, false
	}
	return SectionTag{Roman: roman, Number: n, Letter: strings.ToLower(m[2])}, true
}

// First returns the first section tag found in a raw tag list.
func First(raw []string) (SectionTag, bool) {
	for _, t := range raw {
		if tag, ok := Parse(t); ok {
			return tag, true
		}
	}
	return SectionTag{}, false
}

// SubsectionID is the HTML element id the curated outline uses for this
// subsection ("_outl:VII-A" → "s7a").
func (t SectionTag) SubsectionID() string {
	return fmt.Sprintf("s%d%s", t.Number, t.Letter)
}

// Label is the human-readable form ("VII-A").
func (t SectionTag) Label() string {
	return t.Roman + "-" + strings.ToUpper(t.Letter)
}

// Less orders tags by section number, then subsection letter.
func (t SectionTag) Less(other SectionTag) bool {
	if t.Number != other.Number {
		return t.Number < other.Number
	}
	return t.Letter < other.Letter
}
