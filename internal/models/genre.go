package models

// Genre is reference data fetched once per screen.
type Genre struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Source WorkType `json:"source"`
}
