package model

// Specialty is static reference data grouping doctors by department.
// Icon and Color are presentation keys consumed by the frontend.
type Specialty struct {
	Base
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Icon        string `db:"icon" json:"icon"`
	Color       string `db:"color" json:"color"`
}
