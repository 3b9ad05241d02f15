package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownOr(t *testing.T) {
	assert.Equal(t, "Unknown", unknownOr(""))
	assert.Equal(t, "Unknown", unknownOr("   "))
	assert.Equal(t, "Sparky", unknownOr("Sparky"))
}

func TestAgeYears(t *testing.T) {
	tests := []struct {
		name         string
		consultation string
		dateOfBirth  string
		want         string
	}{
		// Year-only subtraction: month and day are ignored on purpose.
		{"two years despite recent birthday", "2025-03-19", "2023-02-28", "2 years"},
		{"birthday not yet reached still counts", "2025-01-01", "2023-12-31", "2 years"},
		{"singular year", "2024-06-01", "2023-01-15", "1 year"},
		{"zero years", "2023-06-01", "2023-01-15", "0 years"},
		{"missing date of birth", "2025-03-19", "", "Unknown"},
		{"missing consultation date", "", "2023-02-28", "Unknown"},
		{"malformed date of birth", "2025-03-19", "bogus", "Unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ageYears(tc.consultation, tc.dateOfBirth))
		})
	}
}

func TestGenderLine(t *testing.T) {
	assert.Equal(t, "Male (neutered)", genderLine("Male", true))
	assert.Equal(t, "Female (not neutered)", genderLine("Female", false))
	assert.Equal(t, "Unknown (not neutered)", genderLine("", false))
}

func TestFormatMinorPrice(t *testing.T) {
	assert.Equal(t, "150.0 USD", formatMinorPrice(15000, "USD"))
	assert.Equal(t, "150.55 USD", formatMinorPrice(15055, "USD"))
	assert.Equal(t, "150.5 EUR", formatMinorPrice(15050, "EUR"))
	assert.Equal(t, "0.0 USD", formatMinorPrice(0, "USD"))
	assert.Equal(t, "12.99", formatMinorPrice(1299, ""))
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a; b", joinNonEmpty("; ", "a", "", "b"))
	assert.Equal(t, "", joinNonEmpty("; ", "", "  "))
	assert.Equal(t, "only", joinNonEmpty("; ", "only"))
}
