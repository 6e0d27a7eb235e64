package models

// SortDir is a listing sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// LookupItem is an id/name option (category, supplier, manufacturer).
type LookupItem struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PickupPointLookupItem is a pickup point option with its postal label.
type PickupPointLookupItem struct {
	ID    int64  `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
}

// UserLookupItem is a user option for order filtering.
type UserLookupItem struct {
	ID       int64  `json:"id" db:"id"`
	FullName string `json:"fullName" db:"full_name"`
}
