package models

// LocationInfo holds the descriptive and geographic attributes for a
// location name. Latitude and Longitude are nil when the sheet leaves
// them blank.
type LocationInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	State       string   `json:"state,omitempty"`
	Country     string   `json:"country,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}
