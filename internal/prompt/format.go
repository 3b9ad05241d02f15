package prompt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	unknown    = "Unknown"
	dateLayout = "2006-01-02"
)

// unknownOr substitutes the "Unknown" placeholder for blank values so the
// rendered prompt never contains an empty field.
func unknownOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}

// ageYears computes the patient's age as the difference of the calendar
// years of the consultation date and the date of birth. This is year-only
// subtraction, not full date math: a patient born 2023-02-28 is rendered as
// "2 years" at a 2025-03-19 consultation regardless of month and day. The
// approximation is deliberately preserved for parity with the established
// output; do not "fix" it without revising the prompt contract.
func ageYears(consultationDate, dateOfBirth string) string {
	consulted, err := time.Parse(dateLayout, consultationDate)
	if err != nil {
		return unknown
	}
	born, err := time.Parse(dateLayout, dateOfBirth)
	if err != nil {
		return unknown
	}
	years := consulted.Year() - born.Year()
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

// genderLine annotates the gender with the neutered status, defaulting to
// "(not neutered)" when the flag is absent or false.
func genderLine(gender string, neutered bool) string {
	suffix := " (not neutered)"
	if neutered {
		suffix = " (neutered)"
	}
	return unknownOr(gender) + suffix
}

// formatMinorPrice converts minor currency units to major units and renders
// them with at least one fractional digit: 15000 -> "150.0", 15055 ->
// "150.55".
func formatMinorPrice(minor int64, currency string) string {
	s := strconv.FormatFloat(float64(minor)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// joinNonEmpty joins the non-blank parts with the separator.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
