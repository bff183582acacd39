package sim

import "math"

// Detect returns the first obstacle in window that shares the player's lane
// and is closer than threshold along Z. window must be sorted by Z.
func Detect(window []Obstacle, player Actor, threshold float64) (Obstacle, bool) {
	for _, o := range window {
		if o.Z >= player.Z+threshold {
			break
		}
		if o.Lane != player.Lane {
			continue
		}
		if math.Abs(o.Z-player.Z) < threshold {
			return o, true
		}
	}
	return Obstacle{}, false
}
