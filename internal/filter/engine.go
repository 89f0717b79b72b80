// Package filter evaluates clinic records against a compound filter
// specification. Every predicate group must pass for a clinic to be included;
// groups short-circuit in a fixed order. All functions are pure: the
// reference time is always an explicit parameter.
package filter

import (
	"strings"
	"time"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/hours"
)

// openAfterHour is the threshold for the "open after 5pm" toggle.
const openAfterHour = 17

// Matches reports whether a clinic satisfies every active group of the filter
// spec. Empty groups pass trivially. now is only consulted when the OpenNow
// toggle is active.
func Matches(c *entities.ClinicRecord, spec *entities.FilterSpec, now time.Time) bool {
	if q := strings.TrimSpace(spec.SearchQuery); q != "" {
		if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) {
			return false
		}
	}

	// Service groups require every selected token (AND).
	if !allTokens(spec.Services, c.HasService) {
		return false
	}
	if !allTokens(spec.GenderAffirming, c.HasGenderAffirming) {
		return false
	}
	if !allTokens(spec.PrEP, c.HasPrEPOption) {
		return false
	}

	// Insurance and access require at least one selected token (OR).
	if !anyToken(spec.Insurance, c.HasInsurance) {
		return false
	}
	if !anyToken(spec.Access, c.HasAccess) {
		return false
	}

	if len(spec.Boroughs) > 0 && !containsFold(spec.Boroughs, string(c.Borough)) {
		return false
	}

	if spec.GestationalWeeks != nil && !matchesGestationalWeeks(c, *spec.GestationalWeeks) {
		return false
	}

	if spec.OpenNow {
		status := hours.Status(c.Hours, now)
		// Unknown status excludes: a clinic we cannot evaluate is not "open".
		if status == nil || !status.IsOpen {
			return false
		}
	}

	if spec.OpenAfter5pm && !hours.OpenAfter(c.Hours, openAfterHour) {
		return false
	}

	if len(spec.SubwayLines) > 0 && !anyMember(spec.SubwayLines, SubwayLines(c.Transit)) {
		return false
	}
	if len(spec.BusRoutes) > 0 && !anyMember(spec.BusRoutes, BusRoutes(c.Bus)) {
		return false
	}

	return true
}

// matchesGestationalWeeks applies the asymmetric gestational-age logic. The
// sentinel 99 ("beyond 24 weeks") passes on an explicit late-term flag or a
// procedure limit above 24 weeks; the medication limit deliberately does not
// count for the sentinel branch, matching the directory's historical
// behavior. For a concrete week count, either method reaching that age
// suffices; a missing limit counts as "does not reach".
func matchesGestationalWeeks(c *entities.ClinicRecord, weeks int) bool {
	if weeks == entities.LateTermWeeks {
		if c.OffersLateTerm {
			return true
		}
		return c.AbortionProcedureMaxWeeks != nil && *c.AbortionProcedureMaxWeeks > 24
	}
	if weeks <= 0 {
		return true
	}
	reaches := func(limit *int) bool {
		return limit != nil && *limit >= weeks
	}
	return reaches(c.AbortionMedicationMaxWeeks) || reaches(c.AbortionProcedureMaxWeeks)
}

// allTokens requires every selected token to be set on the clinic.
func allTokens(selected []string, has func(string) bool) bool {
	for _, token := range selected {
		if !has(token) {
			return false
		}
	}
	return true
}

// anyToken requires at least one selected token to be set. An empty
// selection passes trivially.
func anyToken(selected []string, has func(string) bool) bool {
	if len(selected) == 0 {
		return true
	}
	for _, token := range selected {
		if has(token) {
			return true
		}
	}
	return false
}

// anyMember reports whether any requested value appears in the parsed set.
// A clinic with no parseable data cannot match an active membership filter.
func anyMember(requested, parsed []string) bool {
	for _, want := range requested {
		if containsFold(parsed, want) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
