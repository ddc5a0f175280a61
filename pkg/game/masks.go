package game

import (
	"math/rand"
	"time"
)

// Mask is a 4-bit light pattern a player must press, unshifted.
// Zero means the player needs a new target.
type Mask byte

// Masks are all legal targets, patterns of one or two lights.
var Masks = [...]Mask{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x08, 0x09, 0x0A, 0x0C}

// IsLegal tells whether m is one of Masks.
func (m Mask) IsLegal() bool {
	for _, legal := range Masks {
		if m == legal {
			return true
		}
	}
	return false
}

// MaskGenerator draws random targets.
type MaskGenerator struct {
	rand *rand.Rand
}

// NewMaskGenerator creates a MaskGenerator. Zero seed uses the clock.
func NewMaskGenerator(seed int64) *MaskGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MaskGenerator{rand: rand.New(rand.NewSource(seed))}
}

// Next draws uniformly from Masks until the result differs from exclude.
func (g *MaskGenerator) Next(exclude Mask) Mask {
	for {
		if m := Masks[g.rand.Intn(len(Masks))]; m != exclude {
			return m
		}
	}
}
