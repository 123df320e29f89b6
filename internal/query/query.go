// Package query derives filtered lists and dashboard statistics from a
// reconciled complaint set. Everything here is pure and recomputed per call.
package query

import (
	"sort"
	"strings"

	"campuscare-admin/internal/models"
)

// RecentLimit is how many complaints the dashboard lists as recent.
const RecentLimit = 5

// Criteria are the complaints view filters. Zero values mean no constraint.
type Criteria struct {
	Status   models.Status   `json:"status,omitempty"`
	Category models.Category `json:"category,omitempty"`
	Search   string          `json:"search,omitempty"`
}

// Filter returns the records matching every set criterion, in their original order.
func Filter(records []models.Complaint, f Criteria) []models.Complaint {
	search := strings.ToLower(f.Search)

	out := make([]models.Complaint, 0, len(records))
	for _, c := range records {
		if f.Status != "" && c.EffectiveStatus() != f.Status {
			continue
		}
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesSearch(c models.Complaint, lowered string) bool {
	return strings.Contains(strings.ToLower(c.Title), lowered) ||
		strings.Contains(strings.ToLower(c.Description), lowered) ||
		strings.Contains(strings.ToLower(c.UserName), lowered)
}

// CategoryCount is one entry of the per-category breakdown.
type CategoryCount struct {
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}

type Stats struct {
	Total      int                `json:"total"`
	Pending    int                `json:"pending"`
	InProgress int                `json:"inProgress"`
	Resolved   int                `json:"resolved"`
	Recent     []models.Complaint `json:"recent"`
	// ByCategory is ordered by first appearance in the input.
	ByCategory []CategoryCount `json:"byCategory"`
}

func Aggregate(records []models.Complaint) Stats {
	stats := Stats{
		Total:      len(records),
		ByCategory: []CategoryCount{},
	}

	index := make(map[models.Category]int)
	for _, c := range records {
		switch c.EffectiveStatus() {
		case models.StatusSubmitted:
			stats.Pending++
		case models.StatusInProgress, models.StatusAssigned:
			stats.InProgress++
		case models.StatusResolved:
			stats.Resolved++
		}

		if i, ok := index[c.Category]; ok {
			stats.ByCategory[i].Count++
		} else {
			index[c.Category] = len(stats.ByCategory)
			stats.ByCategory = append(stats.ByCategory, CategoryCount{Category: c.Category, Count: 1})
		}
	}

	stats.Recent = Recent(records, RecentLimit)
	return stats
}

// Recent returns up to n records by CreatedAt descending. Ties keep input order.
func Recent(records []models.Complaint, n int) []models.Complaint {
	sorted := make([]models.Complaint, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Find returns the record with the given id.
func Find(records []models.Complaint, id string) (models.Complaint, bool) {
	for _, c := range records {
		if c.ID == id {
			return c, true
		}
	}
	return models.Complaint{}, false
}
