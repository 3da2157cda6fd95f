package engine

import "github.com/lixenwraith/memory-tree/parameter"

// Density selects particle counts; it never changes simulation behavior
type Density uint8

const (
	DensityFull Density = iota
	DensityLow
)

func (d Density) String() string {
	if d == DensityLow {
		return "low"
	}
	return "full"
}

// Toggle returns the other density
func (d Density) Toggle() Density {
	if d == DensityLow {
		return DensityFull
	}
	return DensityLow
}

// Counts holds per-mode allocation sizes
type Counts struct {
	Ambient     int
	BurstBudget int
	BurstPool   int
	Snow        int
}

// Counts returns allocation sizes for the density
func (d Density) Counts() Counts {
	if d == DensityLow {
		return Counts{
			Ambient:     parameter.AmbientCountLow,
			BurstBudget: parameter.BurstBudgetLow,
			BurstPool:   parameter.BurstBudgetLow * parameter.BurstPoolMultiplier,
			Snow:        parameter.SnowCountLow,
		}
	}
	return Counts{
		Ambient:     parameter.AmbientCountFull,
		BurstBudget: parameter.BurstBudgetFull,
		BurstPool:   parameter.BurstBudgetFull * parameter.BurstPoolMultiplier,
		Snow:        parameter.SnowCountFull,
	}
}
