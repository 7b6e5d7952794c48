package audit

import (
	"testing"
	"time"
)

func TestQuery_Matches(t *testing.T) {
	base := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	before := base.Add(-time.Hour)
	after := base.Add(time.Hour)

	record := &Record{ID: "a", Outcome: "success", StartedAt: base}

	tests := []struct {
		name  string
		query *Query
		want  bool
	}{
		{"nil query", nil, true},
		{"empty query", &Query{}, true},
		{"since before", &Query{Since: &before}, true},
		{"since after", &Query{Since: &after}, false},
		{"until after", &Query{Until: &after}, true},
		{"until before", &Query{Until: &before}, false},
		{"until equal", &Query{Until: &base}, true},
		{"outcome match", &Query{Outcome: "success"}, true},
		{"outcome mismatch", &Query{Outcome: "not_found"}, false},
		{"id match", &Query{IDs: []string{"x", "a"}}, true},
		{"id mismatch", &Query{IDs: []string{"x"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(record); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_Ascending(t *testing.T) {
	var nilQuery *Query
	if nilQuery.Ascending() {
		t.Error("nil query should sort descending")
	}
	if (&Query{}).Ascending() {
		t.Error("empty sort order should sort descending")
	}
	if !(&Query{SortOrder: "asc"}).Ascending() {
		t.Error("asc sort order should sort ascending")
	}
}

func TestOlderThan(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	q := OlderThan(now, 24*time.Hour)

	if q.Until == nil {
		t.Fatal("expected Until to be set")
	}
	if want := now.Add(-24 * time.Hour); !q.Until.Equal(want) {
		t.Errorf("Until = %v, want %v", *q.Until, want)
	}
	if q.Since != nil {
		t.Error("expected Since to be nil")
	}
}
