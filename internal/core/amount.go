// Package core provides the ledger data model and amount handling utilities.
//
// This file contains functions for parsing monetary amounts from strings and
// normalizing their sign according to the chosen transaction type.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string to a finite float64.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. A typed
// sign is tolerated but carries no meaning: the stored sign is decided by the
// transaction type during normalization. NaN and infinities never pass.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-5")    -> -5, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// NormalizeAmount applies the sign convention: expense bills store a negative
// magnitude, income bills a positive one.
func NormalizeAmount(t BillType, magnitude float64) float64 {
	if t == Expense {
		return -math.Abs(magnitude)
	}
	return math.Abs(magnitude)
}
