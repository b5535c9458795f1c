package entity

import "time"

// University is a directory entry. StateProvince is nil when the source
// dataset has no state/province for the institution.
type University struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	StateProvince *string  `json:"stateProvince"`
	AlphaTwoCode  string   `json:"alphaTwoCode"`
	WebPages      []string `json:"webPages"`
	Domains       []string `json:"domains"`
}

// UniversitySummary is the narrowed projection used by list and search views.
type UniversitySummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Country       string  `json:"country"`
	StateProvince *string `json:"stateProvince"`
}

// Summary projects u into its list view.
func (u University) Summary() UniversitySummary {
	return UniversitySummary{ID: u.ID, Name: u.Name, Country: u.Country, StateProvince: u.StateProvince}
}

// DatasetUpdate records a successful run of the population job.
type DatasetUpdate struct {
	ID          int64
	GeneratedAt time.Time
}
