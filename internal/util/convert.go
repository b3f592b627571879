// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the lumino-tui application.
package util

import "strconv"

// IntToStr converts an int to its decimal string representation.
func IntToStr(n int) string {
	return strconv.Itoa(n)
}

// StrToInt converts a decimal string to an int, returning the fallback
// value if the string is not a valid integer.
func StrToInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
