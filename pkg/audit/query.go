package audit

import "time"

// Matches reports whether a record satisfies the query filters.
// Pagination and sorting are not considered.
func (q *Query) Matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.Since != nil && r.StartedAt.Before(*q.Since) {
		return false
	}
	if q.Until != nil && r.StartedAt.After(*q.Until) {
		return false
	}
	if q.Outcome != "" && r.Outcome != q.Outcome {
		return false
	}
	if len(q.IDs) > 0 {
		found := false
		for _, id := range q.IDs {
			if id == r.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Ascending reports whether results are sorted oldest first.
func (q *Query) Ascending() bool {
	return q != nil && q.SortOrder == "asc"
}

// OlderThan returns a query matching records started before now minus age.
func OlderThan(now time.Time, age time.Duration) *Query {
	cutoff := now.Add(-age)
	return &Query{Until: &cutoff}
}
