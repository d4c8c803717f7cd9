package components

import (
	"time"

	"github.com/automoto/popstrike/scheduler"
	"github.com/yohamta/donburi"
)

type MarkerKind int

const (
	MarkerHit MarkerKind = iota
	MarkerIntercept
)

// MarkerData is a short-lived indicator the renderer draws at X, Y until
// Expires. Hit indicators remove themselves through Expiry.
type MarkerData struct {
	Kind    MarkerKind
	X, Y    float64
	Expires time.Duration
	Expiry  scheduler.Timer
}

var Marker = donburi.NewComponentType[MarkerData]()
