package utils

import "math/rand"

// RandomIndex returns a random index in [0, n). n must be positive.
func RandomIndex(n int) int {
	return rand.Intn(n) //nolint:gosec // Game copy selection, not security critical
}

// ClampFloat constrains v to the [min, max] range.
func ClampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// MaskToken returns a short redacted form of a credential for debug logs.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
