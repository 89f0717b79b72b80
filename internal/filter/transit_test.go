package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubwayLines(t *testing.T) {
	tests := []struct {
		name    string
		transit string
		want    []string
	}{
		{
			name:    "single station",
			transit: "A/C/E at 14th St",
			want:    []string{"A", "C", "E"},
		},
		{
			name:    "multiple stations deduplicated",
			transit: "A/C/E at 14th St; E/M at 23rd St",
			want:    []string{"A", "C", "E", "M"},
		},
		{
			name:    "numbered lines",
			transit: "4/5/6 at 125th St",
			want:    []string{"4", "5", "6"},
		},
		{
			name:    "lowercase input uppercased",
			transit: "n/q/r at Union Sq",
			want:    []string{"N", "Q", "R"},
		},
		{
			name:    "no at pattern parses to nothing",
			transit: "near several subway stops",
			want:    nil,
		},
		{
			name:    "empty",
			transit: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubwayLines(tt.transit))
		})
	}
}

func TestBusRoutes(t *testing.T) {
	tests := []struct {
		name string
		bus  string
		want []string
	}{
		{
			name: "comma separated routes",
			bus:  "M14, M23 at 1st Ave",
			want: []string{"M14", "M23"},
		},
		{
			name: "borough prefixes",
			bus:  "BX12, BX41 at Fordham Rd",
			want: []string{"BX12", "BX41"},
		},
		{
			name: "unparseable",
			bus:  "several bus lines nearby",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BusRoutes(tt.bus))
		})
	}
}
