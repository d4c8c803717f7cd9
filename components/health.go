package components

import "github.com/yohamta/donburi"

// HealthData counts the hits a boss enemy can still take.
type HealthData struct {
	Current int
	Max     int
}

// Hit takes one point of health. It reports false when there was none left
// to take.
func (h *HealthData) Hit() bool {
	if h.Current <= 0 {
		return false
	}
	h.Current--
	return true
}

func (h HealthData) Depleted() bool { return h.Current <= 0 }

var Health = donburi.NewComponentType[HealthData]()
