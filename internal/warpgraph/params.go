package warpgraph

import (
	"fmt"

	"sectorgen/internal/shared/errors"
)

const (
	// MinSectors is the smallest universe the generator will build.
	MinSectors = 10

	DefaultMaxAdjacentSectors = 6
	DefaultSectorsPerRegion   = 50
	DefaultNumStarMalls       = 10
	DefaultNumSeedPlanets     = 3
	DefaultOneWayFraction     = 0.05
	DefaultMaxPathDepth       = 50

	sectorsPerStarMall   = 100
	sectorsPerSeedPlanet = 300
)

// Params are the tunables of one generation run.
type Params struct {
	MaxAdjacentSectors int
	SectorsPerRegion   int
	NumStarMalls       int
	NumSeedPlanets     int
	OneWayFraction     float64
	MaxPathDepth       int

	// VerifyPostconditions runs Verify before the graph is returned.
	VerifyPostconditions bool
}

func DefaultParams() Params {
	return Params{
		MaxAdjacentSectors:   DefaultMaxAdjacentSectors,
		SectorsPerRegion:     DefaultSectorsPerRegion,
		NumStarMalls:         DefaultNumStarMalls,
		NumSeedPlanets:       DefaultNumSeedPlanets,
		OneWayFraction:       DefaultOneWayFraction,
		MaxPathDepth:         DefaultMaxPathDepth,
		VerifyPostconditions: true,
	}
}

func (p Params) validate(totalSectors int) error {
	if totalSectors < MinSectors {
		return errors.Validationf("total sectors must be at least %d, got %d", MinSectors, totalSectors)
	}
	// A spanning tree needs a parent with a free slot besides the new child.
	if p.MaxAdjacentSectors < 3 {
		return errors.Validationf("max adjacent sectors must be at least 3, got %d", p.MaxAdjacentSectors)
	}
	if p.SectorsPerRegion < 1 {
		return errors.Validationf("sectors per region must be positive, got %d", p.SectorsPerRegion)
	}
	if p.NumStarMalls < 1 || p.NumSeedPlanets < 1 {
		return errors.Validation("star mall and seed planet counts must be positive")
	}
	if p.OneWayFraction < 0 || p.OneWayFraction >= 1 {
		return errors.Validationf("one-way fraction must be in [0,1), got %v", p.OneWayFraction)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("max_adjacent=%d per_region=%d star_malls=%d seed_planets=%d one_way=%.3f",
		p.MaxAdjacentSectors, p.SectorsPerRegion, p.NumStarMalls, p.NumSeedPlanets, p.OneWayFraction)
}

// clampCount bounds a configured count by a size-derived ceiling, never below one.
func clampCount(configured, totalSectors, sectorsPer int) int {
	n := configured
	if ceiling := totalSectors / sectorsPer; n > ceiling {
		n = ceiling
	}
	if n < 1 {
		n = 1
	}
	return n
}
