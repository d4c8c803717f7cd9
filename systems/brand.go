package systems

import (
	"math/rand/v2"
	"slices"
)

// AssignBrands picks n distinct brands from catalog for a new level. Brands
// the previous level did not use are preferred; the rest only fill in when
// there are not enough fresh ones.
func AssignBrands(rng *rand.Rand, catalog, previous []string, n int) []string {
	var fresh, reused []string
	for _, b := range catalog {
		if slices.Contains(fresh, b) || slices.Contains(reused, b) {
			continue
		}
		if slices.Contains(previous, b) {
			reused = append(reused, b)
		} else {
			fresh = append(fresh, b)
		}
	}
	if rng != nil {
		rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
		rng.Shuffle(len(reused), func(i, j int) { reused[i], reused[j] = reused[j], reused[i] })
	}

	out := append(fresh, reused...)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ChildBrands returns the brands for the two children of a split landing in
// size slot. The slot's own brand comes first, then the other slots of the
// level assignment in order. The parent's brand is never reused and the two
// children always differ.
func ChildBrands(assignment []string, parent string, slot int) [2]string {
	var out [2]string
	n := len(assignment)
	found := 0
	for i := 0; i < n && found < 2; i++ {
		b := assignment[(slot+i+n)%n]
		if b == "" || b == parent || found == 1 && b == out[0] {
			continue
		}
		out[found] = b
		found++
	}
	return out
}
