package models

import (
	"math"
	"strconv"
)

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoundCents rounds an amount to 2 decimal places
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a currency amount with exactly 2 decimals
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
