package world

import "math"

// Biome classifies terrain for height evaluation and spawn placement.
type Biome int

const (
	BiomeSafe Biome = iota
	BiomeHostile
)

func (b Biome) String() string {
	if b == BiomeHostile {
		return "HOSTILE"
	}
	return "SAFE"
}

func ParseBiome(s string) Biome {
	if s == "HOSTILE" {
		return BiomeHostile
	}
	return BiomeSafe
}

// Spatial frequencies and amplitudes of the two terrain layers. These are
// load-bearing: entities and decoration placed at generation time must land
// on the same surface the simulation follows later.
const (
	heightFreqA       = 0.1
	heightAmpA        = 2.0
	heightFreqB       = 0.05
	heightAmpB        = 1.5
	hostileHeightMult = 1.8
)

// HeightAt is the deterministic terrain height function: two sinusoidal
// layers summed, amplified in hostile terrain. Pure and stateless.
func HeightAt(x, z float64, biome Biome) float64 {
	h := math.Sin(x*heightFreqA)*math.Cos(z*heightFreqA)*heightAmpA +
		math.Sin(x*heightFreqB+z*heightFreqB)*heightAmpB
	if biome == BiomeHostile {
		h *= hostileHeightMult
	}
	return h
}
