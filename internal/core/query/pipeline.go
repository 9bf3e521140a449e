package query

import (
	"strings"
	"time"
)

// Criteria is the transient filter state a view holds. Criteria are
// AND-combined; an empty value is a no-op and excludes nothing.
type Criteria struct {
	// Search matches case-insensitively as a substring against every field
	// value of a record.
	Search string
	// Fields maps a field name to a required case-insensitive substring.
	// A record that lacks the named field is excluded.
	Fields map[string]string
	// From/To bound Record.Timestamp inclusively. Zero values are no-ops.
	From time.Time
	To   time.Time
}

// Empty reports whether the criteria exclude nothing.
func (c Criteria) Empty() bool {
	if c.Search != "" || !c.From.IsZero() || !c.To.IsZero() {
		return false
	}
	for _, v := range c.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Stats are derived summary statistics. They are always recomputed from the
// filtered set, never stored independently.
type Stats struct {
	Total            int            `json:"total"`
	TotalQuantity    int            `json:"total_quantity"`
	CategoryQuantity map[string]int `json:"category_quantity"`
	StandardCounts   map[string]int `json:"standard_counts"`
	DistinctOwners   int            `json:"distinct_owners"`
}

// knownStandards are the named standard buckets; anything else lands in
// the "other" bucket.
var knownStandards = map[string]struct{}{
	"8th": {}, "9th": {}, "10th": {}, "11th": {}, "12th": {},
}

const otherBucket = "other"

// Apply filters records by criteria (preserving input order) and folds the
// summary statistics over the filtered set. A nil or empty input yields an
// empty view and zero statistics, never an error.
func Apply(records []Record, c Criteria) ([]Record, Stats) {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if matches(r, c) {
			filtered = append(filtered, r)
		}
	}
	return filtered, fold(filtered)
}

func matches(r Record, c Criteria) bool {
	if c.Search != "" && !searchHit(r, c.Search) {
		return false
	}
	for field, want := range c.Fields {
		if want == "" {
			continue
		}
		have, ok := r.Fields[field]
		if !ok || !containsFold(have, want) {
			return false
		}
	}
	if !c.From.IsZero() && r.Timestamp.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && r.Timestamp.After(c.To) {
		return false
	}
	return true
}

func searchHit(r Record, term string) bool {
	for _, v := range r.Fields {
		if containsFold(v, term) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func fold(filtered []Record) Stats {
	stats := Stats{
		Total:            len(filtered),
		CategoryQuantity: make(map[string]int),
		StandardCounts:   make(map[string]int),
	}
	owners := make(map[string]struct{})
	for _, r := range filtered {
		if r.Owner != "" {
			owners[r.Owner] = struct{}{}
		}
		for _, it := range r.Items {
			stats.TotalQuantity += it.Quantity
			stats.CategoryQuantity[categoryBucket(it.Category)] += it.Quantity
			stats.StandardCounts[standardBucket(it.Standard)] += it.Quantity
		}
	}
	stats.DistinctOwners = len(owners)
	return stats
}

func categoryBucket(category string) string {
	if category == "" {
		return otherBucket
	}
	return category
}

func standardBucket(standard string) string {
	if _, ok := knownStandards[standard]; ok {
		return standard
	}
	return otherBucket
}
