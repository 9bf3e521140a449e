package query

import (
	"testing"
	"time"
)

func sampleRecords() []Record {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []Record{
		{
			ID: "c1", Owner: "A", Timestamp: base,
			Fields: map[string]string{"centre": "Pune", "status": "pending"},
			Items:  []Item{{Category: "book", Standard: "10th", Quantity: 3}},
		},
		{
			ID: "c2", Owner: "A", Timestamp: base.AddDate(0, 0, 1),
			Fields: map[string]string{"centre": "Mumbai", "status": "given"},
			Items:  []Item{{Category: "pamphlet", Quantity: 5}},
		},
		{
			ID: "c3", Owner: "B", Timestamp: base.AddDate(0, 0, 2),
			Fields: map[string]string{"centre": "Pune", "status": "received"},
			Items:  []Item{{Category: "book", Standard: "12th", Quantity: 2}},
		},
	}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	records := sampleRecords()

	filtered, stats := Apply(records, Criteria{})
	if len(filtered) != len(records) {
		t.Fatalf("expected all %d records, got %d", len(records), len(filtered))
	}
	for i := range records {
		if filtered[i].ID != records[i].ID {
			t.Fatalf("order not preserved at %d: got %s want %s", i, filtered[i].ID, records[i].ID)
		}
	}
	if stats.Total != len(records) {
		t.Fatalf("expected total %d, got %d", len(records), stats.Total)
	}
}

func TestApply_FieldCriterionMatchesSubstringCaseInsensitive(t *testing.T) {
	filtered, _ := Apply(sampleRecords(), Criteria{Fields: map[string]string{"centre": "pUnE"}})

	got := ids(filtered)
	if len(got) != 2 || got[0] != "c1" || got[1] != "c3" {
		t.Fatalf("expected [c1 c3], got %v", got)
	}
}

func TestApply_EmptyCriterionValueIsNoOp(t *testing.T) {
	filtered, _ := Apply(sampleRecords(), Criteria{Fields: map[string]string{"centre": ""}})
	if len(filtered) != 3 {
		t.Fatalf("expected empty criterion to exclude nothing, got %d records", len(filtered))
	}
}

func TestApply_MissingFieldExcludesRecord(t *testing.T) {
	records := sampleRecords()
	// c2 has no "school" field at all; neither do the others
	records[0].Fields["school"] = "St. Mary"

	filtered, _ := Apply(records, Criteria{Fields: map[string]string{"school": "mary"}})
	got := ids(filtered)
	if len(got) != 1 || got[0] != "c1" {
		t.Fatalf("expected only c1 (others lack the field), got %v", got)
	}
}

func TestApply_SearchSpansAllFields(t *testing.T) {
	filtered, _ := Apply(sampleRecords(), Criteria{Search: "mumbai"})
	got := ids(filtered)
	if len(got) != 1 || got[0] != "c2" {
		t.Fatalf("expected [c2], got %v", got)
	}
}

func TestApply_CriteriaAreANDCombined(t *testing.T) {
	filtered, _ := Apply(sampleRecords(), Criteria{
		Fields: map[string]string{"centre": "pune", "status": "received"},
	})
	got := ids(filtered)
	if len(got) != 1 || got[0] != "c3" {
		t.Fatalf("expected [c3], got %v", got)
	}
}

func TestApply_DateRangeBoundariesInclusive(t *testing.T) {
	records := sampleRecords()
	from := records[0].Timestamp
	to := records[1].Timestamp

	filtered, _ := Apply(records, Criteria{From: from, To: to})
	got := ids(filtered)
	if len(got) != 2 || got[0] != "c1" || got[1] != "c2" {
		t.Fatalf("expected boundary records included, got %v", got)
	}
}

func TestApply_StatsFold(t *testing.T) {
	records := []Record{
		{Owner: "A", Items: []Item{{Category: "book", Quantity: 3}}},
		{Owner: "A", Items: []Item{{Category: "pamphlet", Quantity: 5}}},
		{Owner: "B", Items: []Item{{Category: "book", Quantity: 2}}},
	}

	_, stats := Apply(records, Criteria{})
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.CategoryQuantity["book"] != 5 {
		t.Fatalf("expected book quantity 5, got %d", stats.CategoryQuantity["book"])
	}
	if stats.CategoryQuantity["pamphlet"] != 5 {
		t.Fatalf("expected pamphlet quantity 5, got %d", stats.CategoryQuantity["pamphlet"])
	}
	if stats.DistinctOwners != 2 {
		t.Fatalf("expected 2 distinct owners, got %d", stats.DistinctOwners)
	}
	if stats.TotalQuantity != 10 {
		t.Fatalf("expected total quantity 10, got %d", stats.TotalQuantity)
	}
}

func TestApply_UnknownStandardFallsIntoOtherBucket(t *testing.T) {
	records := []Record{
		{Items: []Item{{Category: "book", Standard: "10th", Quantity: 1}}},
		{Items: []Item{{Category: "book", Standard: "diploma", Quantity: 4}}},
	}

	_, stats := Apply(records, Criteria{})
	if stats.StandardCounts["10th"] != 1 {
		t.Fatalf("expected 10th bucket 1, got %d", stats.StandardCounts["10th"])
	}
	if stats.StandardCounts["other"] != 4 {
		t.Fatalf("expected other bucket 4, got %d", stats.StandardCounts["other"])
	}
}

func TestApply_EmptyInputYieldsZeroStats(t *testing.T) {
	filtered, stats := Apply(nil, Criteria{Search: "anything"})
	if len(filtered) != 0 {
		t.Fatalf("expected no records, got %d", len(filtered))
	}
	if stats.Total != 0 || stats.TotalQuantity != 0 || stats.DistinctOwners != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestCriteria_Empty(t *testing.T) {
	if !(Criteria{}).Empty() {
		t.Fatalf("zero criteria should be empty")
	}
	if !(Criteria{Fields: map[string]string{"centre": ""}}).Empty() {
		t.Fatalf("blank field values should still be empty")
	}
	if (Criteria{Search: "x"}).Empty() {
		t.Fatalf("search term should make criteria non-empty")
	}
}
