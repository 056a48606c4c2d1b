package game

import "github.com/chewxy/math32"

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, lower, upper float32) float32 {
	if num < lower {
		return lower
	}
	return math32.Min(num, upper)
}
