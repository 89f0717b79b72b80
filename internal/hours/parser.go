// Package hours normalizes heterogeneous clinic hour records into a canonical
// weekly schedule and evaluates open/closed state against a reference instant.
//
// The free-text path is a best-effort adapter for legacy schedule strings
// ("Mon-Fri 9am-5pm", "Women's Health: Mon-Fri 9am-5pm; Abortion: Wed",
// "24/7", "By appointment only"). Parsing is total: every clause yields
// exactly one HourEntry, degrading to a notes-only placeholder when nothing
// can be recognized.
package hours

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

// The trailing (?:\.|\b) keeps abbreviations from matching inside ordinary
// words ("mon" in "monitoring").
const dayWord = `(?:sundays?|mondays?|tuesdays?|wednesdays?|thursdays?|fridays?|saturdays?|thurs|tues|weds|sun|mon|tue|wed|thu|fri|sat)(?:\.|\b)`

var (
	dayRangeExpr = dayWord + `(?:\s*(?:-|–|—|to)\s*` + dayWord + `)?`

	// A day region is a single day, a hyphenated range, or a comma/slash/and
	// joined list of either.
	dayRegionRe = regexp.MustCompile(`(?i)\b` + dayRangeExpr + `(?:\s*(?:[,/&]|and)\s*` + dayRangeExpr + `)*`)

	specialDaysRe = regexp.MustCompile(`(?i)\b(weekdays?|weekends?|daily|every\s?day|everyday|24\s*[/-]\s*7)\b`)

	timeRangeRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?\s*(?:-|–|—|to|until|till)\s*(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?`)

	// A department prefix is text before the first colon containing no digits
	// (so "Mon 9:00-17:00" is never split at the time's colon).
	departmentRe = regexp.MustCompile(`^([^:\d]+):\s*(.*)$`)

	clauseSplitRe = regexp.MustCompile(`[;\n]+`)
	dayListSepRe  = regexp.MustCompile(`(?i)\s*(?:[,/&]|\band\b)\s*`)
	daySpanSepRe  = regexp.MustCompile(`(?i)\s*(?:-|–|—|\bto\b)\s*`)
)

var dayAliases = map[string]entities.Weekday{
	"sun": entities.Sunday, "sunday": entities.Sunday,
	"mon": entities.Monday, "monday": entities.Monday,
	"tue": entities.Tuesday, "tues": entities.Tuesday, "tuesday": entities.Tuesday,
	"wed": entities.Wednesday, "weds": entities.Wednesday, "wednesday": entities.Wednesday,
	"thu": entities.Thursday, "thur": entities.Thursday, "thurs": entities.Thursday, "thursday": entities.Thursday,
	"fri": entities.Friday, "friday": entities.Friday,
	"sat": entities.Saturday, "saturday": entities.Saturday,
}

// Parse converts a legacy free-text schedule string into canonical hour
// entries. It never fails; unrecognizable clauses become notes-only entries
// and a blank input yields a single empty notes entry.
func Parse(text string) []entities.HourEntry {
	var entries []entities.HourEntry
	for _, clause := range clauseSplitRe.Split(text, -1) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		entries = append(entries, parseClause(clause))
	}
	if len(entries) == 0 {
		entries = append(entries, entities.HourEntry{Notes: strings.TrimSpace(text)})
	}
	return entries
}

// Normalize validates already-structured entries: departments default stays
// implicit, day sets are deduplicated into canonical order, and all-day
// entries drop their ignored open/close times. Malformed open/close strings
// are preserved as-is; the status evaluator skips them.
func Normalize(entries []entities.HourEntry) []entities.HourEntry {
	out := make([]entities.HourEntry, 0, len(entries))
	for _, e := range entries {
		e.Days = canonicalDays(e.Days)
		if e.AllDay {
			e.Open, e.Close = "", ""
		}
		out = append(out, e)
	}
	return out
}

func parseClause(clause string) entities.HourEntry {
	department, rest := splitDepartment(clause)

	days, ok := extractDays(rest)
	if !ok {
		return entities.HourEntry{Department: department, Notes: rest}
	}

	open, close, found := extractTimeRange(rest)
	if !found {
		return entities.HourEntry{Department: department, Days: days, AllDay: true}
	}

	return entities.HourEntry{Department: department, Days: days, Open: open, Close: close}
}

// splitDepartment strips a leading "<Department>: " prefix. The prefix is
// recognized only if it does not itself look like a day token, so
// "Monday: 9-5" keeps Monday as a day rather than a department name.
func splitDepartment(clause string) (string, string) {
	m := departmentRe.FindStringSubmatch(clause)
	if m == nil {
		return "", clause
	}
	prefix := strings.TrimSpace(m[1])
	if dayRegionRe.MatchString(prefix) || specialDaysRe.MatchString(prefix) {
		return "", clause
	}
	return prefix, strings.TrimSpace(m[2])
}

// extractDays finds the day region of a clause and expands it into a
// canonical day set. It fails (false) when no day token is present or when a
// range would wrap the fixed Sun..Sat ordering, e.g. "Sat-Mon".
func extractDays(text string) ([]entities.Weekday, bool) {
	if m := specialDaysRe.FindString(text); m != "" {
		switch {
		case strings.HasPrefix(strings.ToLower(m), "weekday"):
			return canonicalDays(entities.Weekdays), true
		case strings.HasPrefix(strings.ToLower(m), "weekend"):
			return canonicalDays(entities.Weekend), true
		default: // daily / every day / 24/7
			return canonicalDays(entities.WeekOrder[:]), true
		}
	}

	region := dayRegionRe.FindString(text)
	if region == "" {
		return nil, false
	}

	var days []entities.Weekday
	for _, part := range dayListSepRe.Split(region, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		span := daySpanSepRe.Split(part, -1)
		switch len(span) {
		case 1:
			d, ok := lookupDay(span[0])
			if !ok {
				return nil, false
			}
			days = append(days, d)
		case 2:
			expanded, err := expandRange(span[0], span[1])
			if err != nil {
				return nil, false
			}
			days = append(days, expanded...)
		default:
			return nil, false
		}
	}
	if len(days) == 0 {
		return nil, false
	}
	return canonicalDays(days), true
}

// expandRange walks WeekOrder from start to end inclusive. Wrapping is not
// supported: a range whose start falls after its end is an error and the
// whole clause degrades to a notes entry.
func expandRange(start, end string) ([]entities.Weekday, error) {
	from, ok := lookupDay(start)
	if !ok {
		return nil, fmt.Errorf("unknown day token %q", start)
	}
	to, ok := lookupDay(end)
	if !ok {
		return nil, fmt.Errorf("unknown day token %q", end)
	}
	fromIdx, toIdx := entities.WeekdayIndex(from), entities.WeekdayIndex(to)
	if fromIdx > toIdx {
		return nil, fmt.Errorf("day range %s-%s wraps the week", start, end)
	}
	out := make([]entities.Weekday, 0, toIdx-fromIdx+1)
	for i := fromIdx; i <= toIdx; i++ {
		out = append(out, entities.WeekOrder[i])
	}
	return out, nil
}

func lookupDay(token string) (entities.Weekday, bool) {
	token = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(token), "."))
	d, ok := dayAliases[token]
	return d, ok
}

// canonicalDays deduplicates a day set and orders it Sun..Sat.
func canonicalDays(days []entities.Weekday) []entities.Weekday {
	seen := make(map[entities.Weekday]struct{}, len(days))
	out := make([]entities.Weekday, 0, len(days))
	for _, d := range days {
		if entities.WeekdayIndex(d) < 0 {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return entities.WeekdayIndex(out[i]) < entities.WeekdayIndex(out[j])
	})
	return out
}

// extractTimeRange finds "<start> - <end>" in a clause and normalizes both
// ends to 24-hour HH:MM. Minutes default to 00; 12am maps to 00:00 and 12pm
// to 12:00. A bare close hour that would land at or before the open time is
// assumed to be pm ("9-5" means 09:00-17:00), except when the open time is
// itself pm, which is how overnight spans like "10pm-2am" stay intact.
func extractTimeRange(text string) (string, string, bool) {
	m := timeRangeRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}

	openHour, openMin, ok := timeParts(m[1], m[2])
	if !ok {
		return "", "", false
	}
	closeHour, closeMin, ok := timeParts(m[4], m[5])
	if !ok {
		return "", "", false
	}

	openMer := meridiem(m[3])
	closeMer := meridiem(m[6])

	openHour = to24Hour(openHour, openMer)
	closeHour = to24Hour(closeHour, closeMer)

	if closeMer == "" && openMer != "pm" && closeHour < 12 {
		if closeHour*60+closeMin <= openHour*60+openMin {
			closeHour += 12
		}
	}

	return clockString(openHour, openMin), clockString(closeHour, closeMin), true
}

func timeParts(hourStr, minStr string) (int, int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return 0, 0, false
	}
	min := 0
	if minStr != "" {
		min, err = strconv.Atoi(minStr)
		if err != nil || min > 59 {
			return 0, 0, false
		}
	}
	return hour, min, true
}

func meridiem(raw string) string {
	switch strings.ToLower(strings.ReplaceAll(raw, ".", "")) {
	case "am":
		return "am"
	case "pm":
		return "pm"
	}
	return ""
}

func to24Hour(hour int, mer string) int {
	switch mer {
	case "am":
		if hour == 12 {
			return 0
		}
	case "pm":
		if hour < 12 {
			return hour + 12
		}
	}
	return hour
}

func clockString(hour, min int) string {
	return fmt.Sprintf("%02d:%02d", hour, min)
}

// parseClock parses a canonical "HH:MM" string into minutes since midnight.
func parseClock(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || min < 0 || min > 59 {
		return 0, false
	}
	return hour*60 + min, true
}
