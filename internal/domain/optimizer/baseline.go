package optimizer

import (
	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

// Baseline is the greedy "next-cheaper-within-range" planner: at each
// station it buys just enough to reach the first strictly cheaper station
// in range, falling back to the destination or the furthest reachable
// station when no cheaper one exists. O(n^2) in len(Candidates).
func Baseline(in Inputs) (*OptimizationResult, error) {
	effectiveRange := in.EffectiveRangeMiles()

	if in.RouteDistanceMiles <= in.StartFuelGallons*in.MPG+Epsilon {
		return &OptimizationResult{OptimizerUsed: TagBaseline}, nil
	}
	if len(in.Candidates) == 0 {
		return nil, shared.New(shared.ErrNoFeasibleFuelPlan, "no candidate stations available for this route")
	}

	currentFuel := in.StartFuelGallons
	previousMilepost := 0.0
	var stops []FuelStopPlan

	for i, c := range in.Candidates {
		legMiles := c.MilepostMiles - previousMilepost
		currentFuel -= legMiles / in.MPG
		if currentFuel < -Epsilon {
			return nil, shared.New(shared.ErrNoFeasibleFuelPlan, "vehicle runs out of fuel before reaching a candidate station")
		}
		if currentFuel < 0 {
			currentFuel = 0
		}

		remainingToFinish := in.RouteDistanceMiles - c.MilepostMiles
		if remainingToFinish <= currentFuel*in.MPG+Epsilon {
			previousMilepost = c.MilepostMiles
			continue
		}

		canFinishFullTank := remainingToFinish <= effectiveRange+Epsilon

		var targetMilepost float64
		haveTarget := false

		for _, next := range in.Candidates[i+1:] {
			if next.MilepostMiles-c.MilepostMiles > effectiveRange+Epsilon {
				break
			}
			if next.Station.RetailPrice < c.Station.RetailPrice {
				targetMilepost = next.MilepostMiles
				haveTarget = true
				break
			}
		}

		if !haveTarget {
			if canFinishFullTank {
				targetMilepost = in.RouteDistanceMiles
				haveTarget = true
			} else {
				furthest, ok := furthestReachable(in.Candidates[i+1:], c.MilepostMiles, effectiveRange)
				if ok {
					targetMilepost = furthest
					haveTarget = true
				}
			}
		}

		if !haveTarget {
			return nil, shared.New(shared.ErrNoFeasibleFuelPlan, "no station or destination reachable on one full tank")
		}

		needed := (targetMilepost - c.MilepostMiles) / in.MPG
		buy := in.TankCapacityGal - currentFuel
		if want := needed - currentFuel; want < buy {
			if want < 0 {
				want = 0
			}
			buy = want
		}

		if buy > Epsilon {
			fuelAfter := currentFuel + buy
			stops = append(stops, FuelStopPlan{
				Candidate:         c,
				GallonsPurchased:  buy,
				CostDollars:       buy * c.Station.RetailPrice,
				FuelBeforeGallons: currentFuel,
				FuelAfterGallons:  fuelAfter,
			})
			currentFuel = fuelAfter
		}

		previousMilepost = c.MilepostMiles
	}

	finalLeg := in.RouteDistanceMiles - previousMilepost
	currentFuel -= finalLeg / in.MPG
	if currentFuel < -Epsilon {
		return nil, shared.New(shared.ErrNoFeasibleFuelPlan, "vehicle runs out of fuel before reaching the destination")
	}

	stops = dropNegligible(stops)
	gallons, cost := sumTotals(stops)
	return &OptimizationResult{
		Stops:         stops,
		TotalGallons:  gallons,
		TotalCost:     cost,
		OptimizerUsed: TagBaseline,
	}, nil
}

// furthestReachable returns the furthest candidate milepost within
// effectiveRange of fromMilepost, if any.
func furthestReachable(rest []*catalog.CandidateStation, fromMilepost, effectiveRange float64) (float64, bool) {
	found := false
	var furthest float64
	for _, c := range rest {
		if c.MilepostMiles-fromMilepost > effectiveRange+Epsilon {
			break
		}
		furthest = c.MilepostMiles
		found = true
	}
	return furthest, found
}

func dropNegligible(stops []FuelStopPlan) []FuelStopPlan {
	out := stops[:0]
	for _, s := range stops {
		if s.GallonsPurchased >= MinPurchaseGallons {
			out = append(out, s)
		}
	}
	return out
}
