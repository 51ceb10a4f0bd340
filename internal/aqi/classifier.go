package aqi

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"aqimon/internal/models"
)

// MinIndex and MaxIndex bound the nominal valid AQI range
const (
	MinIndex = 0.0
	MaxIndex = 500.0
)

// Band is one row of the classification table
type Band struct {
	Low   float64
	High  float64
	Label string
	Color string
}

// Bands is the ordered AQI classification table. Bands are checked in
// order and the first band whose inclusive [Low, High] range contains
// the value wins.
var Bands = []Band{
	{0, 50, "Good", "#00e400"},
	{51, 100, "Moderate", "#ffff00"},
	{101, 150, "Unhealthy for Sensitive Groups", "#ff7e00"},
	{151, 200, "Unhealthy", "#ff0000"},
	{201, 300, "Very Unhealthy", "#8f3f97"},
	{301, 500, "Hazardous", "#7e0023"},
}

// Unknown is the sentinel category for values outside the band table.
// Falling back to it is a defined outcome, not an error.
var Unknown = models.Category{Label: "Unknown", Color: "gray"}

// Classify maps an index value to its severity category. Total over all
// real numbers: out-of-range values yield the Unknown sentinel.
func Classify(value float64) models.Category {
	for _, b := range Bands {
		if value >= b.Low && value <= b.High {
			return models.Category{Label: b.Label, Color: b.Color}
		}
	}
	return Unknown
}

// Label returns just the category label for an index value
func Label(value float64) string {
	return Classify(value).Label
}

// Color returns just the display color for an index value
func Color(value float64) string {
	return Classify(value).Color
}

// IsValidIndex reports whether a value lies in the nominal AQI range
func IsValidIndex(value float64) bool {
	return value >= MinIndex && value <= MaxIndex
}

// IsValidIndexString reports whether a raw string holds a valid index
// value. Never errors: non-numeric input is simply invalid.
func IsValidIndexString(raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false
	}
	return IsValidIndex(v)
}

// FormatDisplay builds a human-readable AQI line for a city. Values
// outside the valid range are flagged rather than classified.
func FormatDisplay(value float64, city string) string {
	display := CanonicalCityName(city)
	if !IsValidIndex(value) {
		return fmt.Sprintf("Invalid AQI value for %s: %g", display, value)
	}
	return fmt.Sprintf("Current AQI in %s: %g (%s)", display, value, Label(value))
}

// CanonicalCityName converts a requested city name to its canonical
// display form (title case, trimmed)
func CanonicalCityName(city string) string {
	words := strings.Fields(city)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
