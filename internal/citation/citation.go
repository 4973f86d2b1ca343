// Package citation recovers page ranges from the free-text bibliographic
// citations ("bibl" attribute) found on AMC documents.
package citation

import (
	"regexp"
	"strconv"
	"strings"
)

// pagePattern matches the marker "s. " followed by one or more digit groups.
// The marker is literal: "S. 7", "s.7" and "Seite 7" do not match.
var pagePattern = regexp.MustCompile(`s\. (\d+(?:\s+\d+)*)`)

// Pages is a start/end page pair. Known is false when the citation carried no
// page expression; Start and End are zero in that case.
type Pages struct {
	Start int
	End   int
	Known bool
}

// Single reports whether the range covers exactly one page.
func (p Pages) Single() bool {
	return p.Known && p.Start == p.End
}

// PageRange extracts the page range from a citation string. Only the first
// "s. " expression is used. Online sources carry no pagination, so a missing
// expression is an ordinary result, not an error.
func PageRange(text string) Pages {
	m := pagePattern.FindStringSubmatch(text)
	if m == nil {
		return Pages{}
	}
	tokens := strings.Fields(m[1])
	start, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Pages{}
	}
	end, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		return Pages{}
	}
	return Pages{Start: start, End: end, Known: true}
}
