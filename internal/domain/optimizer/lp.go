package optimizer

import (
	"context"

	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

// LPProblem is the linear program described in the specification: fuel
// level and purchase variables at every point along [0, s1, ..., sk, D].
type LPProblem struct {
	// PointMileposts is [0, candidate mileposts..., D].
	PointMileposts []float64

	// PricePerGallon[i] is the price at PointMileposts[i], zero at the
	// two endpoints where no purchase is possible.
	PricePerGallon []float64

	StartFuelGallons float64
	MPG              float64
	TankCapacityGal  float64
}

// LPSolution is what a Solver returns for an LPProblem.
type LPSolution struct {
	// BuyGallons[i] is the purchase at PointMileposts[i]; zero at the endpoints.
	BuyGallons []float64
	Optimal    bool
}

// Solver is the capability port for an external linear-program solver
// (e.g. an OR-Tools service reached over gRPC). It is optional: the LP
// planner degrades to Baseline when no Solver is configured or the
// Solver fails or reports a non-optimal result.
type Solver interface {
	Solve(ctx context.Context, problem LPProblem) (LPSolution, error)
}

// LP builds the linear program for in, asks solver to solve it, and maps
// the solution back onto in.Candidates. On any error, unavailable solver,
// or non-optimal solution it transparently falls back to Baseline — that
// fallback is never surfaced to the caller as an error.
func LP(ctx context.Context, in Inputs, solver Solver) (*OptimizationResult, error) {
	if solver == nil {
		return Baseline(in)
	}

	effectiveRange := in.EffectiveRangeMiles()

	if in.RouteDistanceMiles <= in.StartFuelGallons*in.MPG+Epsilon {
		return &OptimizationResult{OptimizerUsed: TagOrtools}, nil
	}
	if len(in.Candidates) == 0 {
		return nil, shared.New(shared.ErrNoFeasibleFuelPlan, "no candidate stations available for this route")
	}

	problem := buildLPProblem(in)
	for i := 1; i < len(problem.PointMileposts); i++ {
		gap := problem.PointMileposts[i] - problem.PointMileposts[i-1]
		if gap > effectiveRange+Epsilon {
			return nil, shared.New(shared.ErrNoFeasibleFuelPlan, "gap between consecutive points exceeds effective range")
		}
	}

	solution, err := solver.Solve(ctx, problem)
	if err != nil || !solution.Optimal {
		return Baseline(in)
	}

	stops := stopsFromSolution(in.Candidates, problem, solution)
	gallons, cost := sumTotals(stops)
	return &OptimizationResult{
		Stops:         stops,
		TotalGallons:  gallons,
		TotalCost:     cost,
		OptimizerUsed: TagOrtools,
	}, nil
}

func buildLPProblem(in Inputs) LPProblem {
	mileposts := make([]float64, 0, len(in.Candidates)+2)
	prices := make([]float64, 0, len(in.Candidates)+2)

	mileposts = append(mileposts, 0)
	prices = append(prices, 0)
	for _, c := range in.Candidates {
		mileposts = append(mileposts, c.MilepostMiles)
		prices = append(prices, c.Station.RetailPrice)
	}
	mileposts = append(mileposts, in.RouteDistanceMiles)
	prices = append(prices, 0)

	return LPProblem{
		PointMileposts:   mileposts,
		PricePerGallon:   prices,
		StartFuelGallons: in.StartFuelGallons,
		MPG:              in.MPG,
		TankCapacityGal:  in.TankCapacityGal,
	}
}

func stopsFromSolution(candidates []*catalog.CandidateStation, problem LPProblem, solution LPSolution) []FuelStopPlan {
	var stops []FuelStopPlan
	fuel := problem.StartFuelGallons

	for i := 1; i < len(problem.PointMileposts)-1; i++ {
		leg := problem.PointMileposts[i] - problem.PointMileposts[i-1]
		fuel -= leg / problem.MPG
		if fuel < 0 {
			fuel = 0
		}

		buy := 0.0
		if i < len(solution.BuyGallons) {
			buy = solution.BuyGallons[i]
		}
		if buy >= MinPurchaseGallons {
			c := candidates[i-1]
			fuelAfter := fuel + buy
			stops = append(stops, FuelStopPlan{
				Candidate:         c,
				GallonsPurchased:  buy,
				CostDollars:       buy * c.Station.RetailPrice,
				FuelBeforeGallons: fuel,
				FuelAfterGallons:  fuelAfter,
			})
			fuel = fuelAfter
		}
	}

	return stops
}
