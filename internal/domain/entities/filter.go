package entities

import "strings"

// FilterSpec is the query a user has built in the directory UI.
//
// It is constructed per session and mutated by user controls; the filter
// engine treats each evaluation as an immutable snapshot. Token slices hold
// the flag tokens defined alongside ClinicRecord.
type FilterSpec struct {
	SearchQuery string `json:"search_query,omitempty"`

	Services        []string `json:"services,omitempty"`
	GenderAffirming []string `json:"gender_affirming,omitempty"`
	PrEP            []string `json:"prep,omitempty"`
	Insurance       []string `json:"insurance,omitempty"`
	Access          []string `json:"access,omitempty"`
	Boroughs        []string `json:"boroughs,omitempty"`
	SubwayLines     []string `json:"subway_lines,omitempty"`
	BusRoutes       []string `json:"bus_routes,omitempty"`

	// GestationalWeeks is nil when inactive. LateTermWeeks (99) is the
	// sentinel for "beyond 24 weeks".
	GestationalWeeks *int `json:"gestational_weeks,omitempty"`

	OpenNow      bool `json:"open_now,omitempty"`
	OpenAfter5pm bool `json:"open_after_5pm,omitempty"`
}

// IsZero reports whether no filter group is active.
func (f *FilterSpec) IsZero() bool {
	return strings.TrimSpace(f.SearchQuery) == "" &&
		len(f.Services) == 0 &&
		len(f.GenderAffirming) == 0 &&
		len(f.PrEP) == 0 &&
		len(f.Insurance) == 0 &&
		len(f.Access) == 0 &&
		len(f.Boroughs) == 0 &&
		len(f.SubwayLines) == 0 &&
		len(f.BusRoutes) == 0 &&
		f.GestationalWeeks == nil &&
		!f.OpenNow &&
		!f.OpenAfter5pm
}
