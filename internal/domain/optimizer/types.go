// Package optimizer decides where along a route to buy fuel and how much,
// given a tank-range constraint and a starting fuel level. Two planners
// implement the same contract: a greedy baseline and an optional LP solver
// that falls back to the baseline when unavailable or non-optimal.
package optimizer

import "github.com/andrescamacho/fuelplanner/internal/domain/catalog"

// Tag identifies which planner produced an OptimizationResult.
type Tag string

const (
	TagBaseline Tag = "baseline"
	TagOrtools  Tag = "ortools"
)

// Epsilon is the floating-point slack applied to all feasibility and
// range comparisons in this package.
const Epsilon = 1e-6

// MinPurchaseGallons is the smallest purchase worth recording; anything
// below this is numerical noise from the solver and is dropped.
const MinPurchaseGallons = 1e-4

// Inputs bundles the parameters a planner needs. Candidates must already
// be sorted by MilepostMiles ascending.
type Inputs struct {
	Candidates         []*catalog.CandidateStation
	RouteDistanceMiles float64
	StartFuelGallons   float64
	MPG                float64
	TankCapacityGal    float64
	MaxRangeMiles      float64
}

// EffectiveRangeMiles is the lesser of the vehicle's stated max range and
// the distance a full tank can cover.
func (in Inputs) EffectiveRangeMiles() float64 {
	fromTank := in.TankCapacityGal * in.MPG
	if in.MaxRangeMiles < fromTank {
		return in.MaxRangeMiles
	}
	return fromTank
}

// FuelStopPlan is a single purchase decision at a candidate station.
type FuelStopPlan struct {
	Candidate         *catalog.CandidateStation
	GallonsPurchased  float64
	CostDollars       float64
	FuelBeforeGallons float64
	FuelAfterGallons  float64
}

// OptimizationResult is the ordered outcome of a planning run.
type OptimizationResult struct {
	Stops           []FuelStopPlan
	TotalGallons    float64
	TotalCost       float64
	OptimizerUsed   Tag
}

func sumTotals(stops []FuelStopPlan) (gallons, cost float64) {
	for _, s := range stops {
		gallons += s.GallonsPurchased
		cost += s.CostDollars
	}
	return gallons, cost
}
