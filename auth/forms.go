package auth

import (
	"strconv"
	"strings"
	"time"
)

// AccountForm holds the fields of the register and account update forms.
type AccountForm struct {
	Username        string
	Email           string
	Day             string
	Month           string
	Year            string
	Password        string
	ConfirmPassword string
}

// Normalise trims the fields that are never meaningful with surrounding whitespace.
func (f AccountForm) Normalise() AccountForm {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.Day = strings.TrimSpace(f.Day)
	f.Month = strings.TrimSpace(f.Month)
	f.Year = strings.TrimSpace(f.Year)
	return f
}

// DateOfBirth returns the date as YYYY-MM-DD, or "" when the parts are not a real calendar date.
func (f AccountForm) DateOfBirth() string {
	return FormatDate(f.Day, f.Month, f.Year)
}

// FormatDate assembles day, month and year parts into YYYY-MM-DD. Parts that do not form a real
// calendar date (31 February, month 13, non-numeric input) yield "".
func FormatDate(day, month, year string) string {
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return ""
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return ""
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return ""
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return ""
	}
	return t.Format(time.DateOnly)
}
