package models

// Sport is static reference data.
type Sport struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
