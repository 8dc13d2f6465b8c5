package services

import (
	"spendboard/internal/logger"
	"spendboard/internal/models"
	"spendboard/internal/store"
)

// ResolveHierarchy inner-joins the Base, Middle and Top tables into the
// flat per-item category chain. An item whose sub-sub-category has no
// middle row, or whose sub-category has no top row, is silently excluded;
// tolerating those gaps is the enrichment stage's job, not this one's.
func ResolveHierarchy(tables *store.ReferenceTables) []models.HierarchyEntry {
	middleBySubSub := make(map[string]models.MiddleRow, len(tables.Middle))
	for _, m := range tables.Middle {
		if _, ok := middleBySubSub[m.SubSubCategory]; !ok {
			middleBySubSub[m.SubSubCategory] = m
		}
	}
	topBySub := make(map[string]models.TopRow, len(tables.Top))
	for _, t := range tables.Top {
		if _, ok := topBySub[t.SubCategory]; !ok {
			topBySub[t.SubCategory] = t
		}
	}

	entries := make([]models.HierarchyEntry, 0, len(tables.Base))
	for _, b := range tables.Base {
		middle, ok := middleBySubSub[b.SubSubCategory]
		if !ok {
			continue
		}
		top, ok := topBySub[middle.SubCategory]
		if !ok {
			continue
		}
		entries = append(entries, models.HierarchyEntry{
			Item:           b.Item,
			SubSubCategory: b.SubSubCategory,
			SubCategory:    middle.SubCategory,
			Category:       top.Category,
		})
	}
	return entries
}

// hierarchyLookup builds the per-item lookup used by enrichment. Duplicate
// item keys would fan a left join out and duplicate transactions, so only
// the first entry per item is kept and the collision is logged as a
// reference-data defect.
func hierarchyLookup(entries []models.HierarchyEntry) map[string]models.HierarchyEntry {
	lookup := make(map[string]models.HierarchyEntry, len(entries))
	for _, e := range entries {
		if _, ok := lookup[e.Item]; ok {
			logger.Get().Warnw("duplicate item in category hierarchy", "item", e.Item)
			continue
		}
		lookup[e.Item] = e
	}
	return lookup
}

// locationLookup builds the per-name location lookup, deduplicated on the
// location name for the same fan-out reason.
func locationLookup(locations []models.LocationInfo) map[string]models.LocationInfo {
	lookup := make(map[string]models.LocationInfo, len(locations))
	for _, l := range locations {
		if l.Name == "" {
			continue
		}
		if _, ok := lookup[l.Name]; ok {
			logger.Get().Warnw("duplicate location in reference table", "location", l.Name)
			continue
		}
		lookup[l.Name] = l
	}
	return lookup
}
