package models

// BaseRow is one row of the Base Table sheet: an item name and the
// sub-sub-category it belongs to. The sheet's "All Items" column is
// canonicalised to Item when loaded.
type BaseRow struct {
	Item           string `json:"item"`
	SubSubCategory string `json:"sub_sub_category"`
}

// MiddleRow maps a sub-sub-category to its sub-category.
type MiddleRow struct {
	SubSubCategory string `json:"sub_sub_category"`
	SubCategory    string `json:"sub_category"`
}

// TopRow maps a sub-category to its top-level category.
type TopRow struct {
	SubCategory string `json:"sub_category"`
	Category    string `json:"category"`
}

// HierarchyEntry is the fully resolved three-level category chain for a
// single item, produced by inner-joining the Base, Middle and Top tables.
type HierarchyEntry struct {
	Item           string `json:"item"`
	SubSubCategory string `json:"sub_sub_category"`
	SubCategory    string `json:"sub_category"`
	Category       string `json:"category"`
}
