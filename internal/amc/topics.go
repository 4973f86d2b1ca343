package amc

import (
	"sort"
	"strings"
)

// TopicSet is the set of ressort tags of one article. The zero value is an
// empty, read-only set.
type TopicSet map[string]struct{}

// ParseTopics splits a whitespace-delimited tag string into a set. Runs of
// whitespace count as one separator; an empty string yields an empty set.
func ParseTopics(s string) TopicSet {
	fields := strings.Fields(s)
	set := make(TopicSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// NewTopicSet builds a set from individual tags.
func NewTopicSet(tags ...string) TopicSet {
	set := make(TopicSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether tag is in the set.
func (s TopicSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags.
func (s TopicSet) Len() int { return len(s) }

// Intersects reports whether the sets share at least one tag.
func (s TopicSet) Intersects(other TopicSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if large.Has(t) {
			return true
		}
	}
	return false
}

// Union returns a new set holding the tags of both sets.
func (s TopicSet) Union(other TopicSet) TopicSet {
	out := make(TopicSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Sorted returns the tags in ascending byte order.
func (s TopicSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted tags with single spaces, so ParseTopics(s.String())
// equals s.
func (s TopicSet) String() string { return strings.Join(s.Sorted(), " ") }
