package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/optimizer"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

type fuelPlanContext struct {
	inputs         optimizer.Inputs
	baselineResult *optimizer.OptimizationResult
	baselineErr    error
	lpResult       *optimizer.OptimizationResult
	lpErr          error
}

func (fc *fuelPlanContext) reset() {
	fc.inputs = optimizer.Inputs{}
	fc.baselineResult = nil
	fc.baselineErr = nil
	fc.lpResult = nil
	fc.lpErr = nil
}

func (fc *fuelPlanContext) aRouteOfMiles(miles float64) error {
	fc.inputs.RouteDistanceMiles = miles
	return nil
}

func (fc *fuelPlanContext) aVehicleWith(startFuel, mpg, tank, maxRange float64) error {
	fc.inputs.StartFuelGallons = startFuel
	fc.inputs.MPG = mpg
	fc.inputs.TankCapacityGal = tank
	fc.inputs.MaxRangeMiles = maxRange
	return nil
}

// candidateStationsAt parses a free-form list like
// "milepost 80 priced 4.0, milepost 160 priced 3.0" into candidates.
func (fc *fuelPlanContext) candidateStationsAt(list string) error {
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		var milepost, price float64
		if _, err := fmt.Sscanf(entry, "milepost %f priced %f", &milepost, &price); err != nil {
			return fmt.Errorf("unparseable candidate entry %q: %w", entry, err)
		}
		fc.inputs.Candidates = append(fc.inputs.Candidates, &catalog.CandidateStation{
			Station:       &catalog.Station{RetailPrice: price},
			MilepostMiles: milepost,
		})
	}
	return nil
}

func (fc *fuelPlanContext) theBaselinePlannerRuns() error {
	fc.baselineResult, fc.baselineErr = optimizer.Baseline(fc.inputs)
	return nil
}

// theLPPlannerRunsWithAnOptimalSolver runs the LP planner with a stand-in
// solver that buys just enough at each station to reach the next point,
// and at the globally cheapest candidate enough to reach the destination
// (capped at tank capacity). That plan is optimal on the S5 fixture; it
// is not a general LP solver.
func (fc *fuelPlanContext) theLPPlannerRunsWithAnOptimalSolver() error {
	cheapest := 0.0
	first := true
	for _, c := range fc.inputs.Candidates {
		if first || c.Station.RetailPrice < cheapest {
			cheapest = c.Station.RetailPrice
			first = false
		}
	}

	solver := solverFunc(func(_ context.Context, problem optimizer.LPProblem) (optimizer.LPSolution, error) {
		last := len(problem.PointMileposts) - 1
		buy := make([]float64, len(problem.PointMileposts))
		fuel := problem.StartFuelGallons
		for i := 1; i < last; i++ {
			leg := problem.PointMileposts[i] - problem.PointMileposts[i-1]
			fuel -= leg / problem.MPG
			target := problem.PointMileposts[i+1]
			if problem.PricePerGallon[i] <= cheapest+1e-9 {
				target = problem.PointMileposts[last]
			}
			need := (target - problem.PointMileposts[i]) / problem.MPG
			if need > problem.TankCapacityGal {
				need = problem.TankCapacityGal
			}
			if need > fuel {
				buy[i] = need - fuel
				fuel = need
			}
		}
		return optimizer.LPSolution{BuyGallons: buy, Optimal: true}, nil
	})

	fc.lpResult, fc.lpErr = optimizer.LP(context.Background(), fc.inputs, solver)
	return nil
}

type solverFunc func(ctx context.Context, problem optimizer.LPProblem) (optimizer.LPSolution, error)

func (f solverFunc) Solve(ctx context.Context, problem optimizer.LPProblem) (optimizer.LPSolution, error) {
	return f(ctx, problem)
}

func (fc *fuelPlanContext) thePlanHasStops(n int) error {
	if fc.baselineErr != nil {
		return fmt.Errorf("expected a plan but baseline failed: %w", fc.baselineErr)
	}
	if len(fc.baselineResult.Stops) != n {
		return fmt.Errorf("expected %d stops, got %d", n, len(fc.baselineResult.Stops))
	}
	return nil
}

func (fc *fuelPlanContext) thePlanHasAtLeastStop(n int) error {
	if fc.baselineErr != nil {
		return fmt.Errorf("expected a plan but baseline failed: %w", fc.baselineErr)
	}
	if len(fc.baselineResult.Stops) < n {
		return fmt.Errorf("expected at least %d stops, got %d", n, len(fc.baselineResult.Stops))
	}
	return nil
}

func (fc *fuelPlanContext) theTotalFuelCostIs(cost float64) error {
	if fc.baselineResult.TotalCost != cost {
		return fmt.Errorf("expected total cost %v, got %v", cost, fc.baselineResult.TotalCost)
	}
	return nil
}

func (fc *fuelPlanContext) thePlanIsFeasibleAcrossTheWholeRoute() error {
	fuel := fc.inputs.StartFuelGallons
	previous := 0.0
	for _, stop := range fc.baselineResult.Stops {
		fuel -= (stop.Candidate.MilepostMiles - previous) / fc.inputs.MPG
		if fuel < -optimizer.Epsilon {
			return fmt.Errorf("fuel went negative before milepost %v", stop.Candidate.MilepostMiles)
		}
		fuel += stop.GallonsPurchased
		if fuel > fc.inputs.TankCapacityGal+optimizer.Epsilon {
			return fmt.Errorf("fuel exceeded tank capacity after stop at milepost %v", stop.Candidate.MilepostMiles)
		}
		previous = stop.Candidate.MilepostMiles
	}
	fuel -= (fc.inputs.RouteDistanceMiles - previous) / fc.inputs.MPG
	if fuel < -optimizer.Epsilon {
		return fmt.Errorf("fuel went negative on the final leg")
	}
	return nil
}

func (fc *fuelPlanContext) thePlanFailsWith(code string) error {
	if fc.baselineErr == nil {
		return fmt.Errorf("expected the plan to fail with %q but it succeeded", code)
	}
	kind := shared.KindOf(fc.baselineErr)
	if string(kind) != code {
		return fmt.Errorf("expected error kind %q, got %q", code, kind)
	}
	return nil
}

func (fc *fuelPlanContext) theLPPlanCostIsNotGreaterThanTheBaselinePlanCost() error {
	if fc.lpErr != nil {
		return fmt.Errorf("LP planner failed: %w", fc.lpErr)
	}
	if fc.baselineErr != nil {
		return fmt.Errorf("baseline planner failed: %w", fc.baselineErr)
	}
	if fc.lpResult.TotalCost > fc.baselineResult.TotalCost+1e-4 {
		return fmt.Errorf("LP cost %v exceeds baseline cost %v", fc.lpResult.TotalCost, fc.baselineResult.TotalCost)
	}
	return nil
}

// InitializeFuelPlanScenario registers the fuel-plan optimization steps.
func InitializeFuelPlanScenario(sc *godog.ScenarioContext) {
	fc := &fuelPlanContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	sc.Step(`^a route of (\d+) miles$`, func(miles int) error { return fc.aRouteOfMiles(float64(miles)) })
	sc.Step(`^a vehicle with (\d+) starting gallons, (\d+) mpg, (\d+) gallon tank, and (\d+) mile max range$`,
		func(startFuel, mpg, tank, maxRange int) error {
			return fc.aVehicleWith(float64(startFuel), float64(mpg), float64(tank), float64(maxRange))
		})
	sc.Step(`^candidate stations at (.+)$`, fc.candidateStationsAt)
	sc.Step(`^the baseline planner runs$`, fc.theBaselinePlannerRuns)
	sc.Step(`^the LP planner runs with an optimal solver$`, fc.theLPPlannerRunsWithAnOptimalSolver)
	sc.Step(`^the plan has (\d+) stops?$`, fc.thePlanHasStops)
	sc.Step(`^the plan has at least (\d+) stops?$`, fc.thePlanHasAtLeastStop)
	sc.Step(`^the total fuel cost is (\d+)$`, func(n int) error { return fc.theTotalFuelCostIs(float64(n)) })
	sc.Step(`^the plan is feasible across the whole route$`, fc.thePlanIsFeasibleAcrossTheWholeRoute)
	sc.Step(`^the plan fails with "([^"]*)"$`, fc.thePlanFailsWith)
	sc.Step(`^the LP plan cost is not greater than the baseline plan cost$`, fc.theLPPlanCostIsNotGreaterThanTheBaselinePlanCost)
}
