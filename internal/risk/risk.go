package risk

// Limits caps the premium a single order may pay. Zero means uncapped,
// matching the competition posture of taking every edge.
type Limits struct {
	MaxPremiumPerOrder float64
}

func (l Limits) Allow(premium float64) bool {
	if l.MaxPremiumPerOrder <= 0 {
		return true
	}
	return premium <= l.MaxPremiumPerOrder
}
