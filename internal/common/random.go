package common

import (
	"math/rand/v2"
	"strings"
)

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36 returns n pseudo-random base-36 characters (lowercase).
// It is not suitable for secrets; collisions are accepted by callers.
func RandomBase36(n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(base36Digits[rand.IntN(len(base36Digits))])
	}
	return sb.String()
}

// RandomHash returns a short uppercase identifier such as "K3Z9Q".
func RandomHash() string {
	return strings.ToUpper(RandomBase36(5))
}

// RandomIntn returns a pseudo-random number in [min, max].
func RandomIntn(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}
