package model

// Category is an inventory grouping (Electric, Plumbing, ...). Categories are
// created at load/seed time and never deleted while items still reference them.
type Category struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}
