// Package suggest matches a mistyped command name against the known ones.
package suggest

import "github.com/agnivade/levenshtein"

// MaxDistance is the largest edit distance still reported as a suggestion.
const MaxDistance = 2

// Closest returns the known name nearest to name by Levenshtein distance.
// It reports false unless the nearest name is within MaxDistance and no
// other name is equally near.
func Closest(name string, known []string) (string, bool) {
	best := ""
	bestDist := MaxDistance + 1
	unique := false

	for _, candidate := range known {
		d := levenshtein.ComputeDistance(name, candidate)
		switch {
		case d < bestDist:
			best, bestDist, unique = candidate, d, true
		case d == bestDist:
			unique = false
		}
	}

	if !unique || bestDist > MaxDistance {
		return "", false
	}
	return best, true
}
