// Package planning composes geocoding, routing, station selection, and
// fuel-plan optimization into the single exposed "plan a trip" operation.
package planning

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/andrescamacho/fuelplanner/internal/application/selection"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
	"github.com/andrescamacho/fuelplanner/internal/domain/geocoding"
	"github.com/andrescamacho/fuelplanner/internal/domain/optimizer"
	"github.com/andrescamacho/fuelplanner/internal/domain/routing"
)

// VehicleDefaults are the effective vehicle parameters applied when a
// Request omits an override.
type VehicleDefaults struct {
	MPG             float64
	TankCapacityGal float64
	MaxRangeMiles   float64
	CorridorMiles   float64
}

// Request is the orchestrator's input, already validated at the HTTP
// boundary; pointer fields are overrides that default from VehicleDefaults.
type Request struct {
	StartLocation       string
	FinishLocation      string
	StartFuelPercent    *float64
	CorridorMiles       *float64
	VehicleMPG          *float64
	TankCapacityGallons *float64
	MaxRangeMiles       *float64
	Optimizer           optimizer.Tag
}

// Result is the orchestrator's output, ready for the HTTP boundary to
// round and serialize.
type Result struct {
	Start          geo.Point
	Finish         geo.Point
	Route          routing.RouteData
	Optimization   *optimizer.OptimizationResult
	EffectiveMPG   float64
	EffectiveRange float64
	EffectiveTank  float64
	EffectiveCorridor float64
	StartFuelGallons  float64
}

// Orchestrator composes D (geocoding) -> E (routing) -> F (selection) ->
// G (optimization) for a single plan request. It is stateless and safe
// to share across requests.
type Orchestrator struct {
	geocoder geocoding.Client
	router   routing.Client
	selector *selection.Selector
	solver   optimizer.Solver
	defaults VehicleDefaults
}

func New(geocoder geocoding.Client, router routing.Client, selector *selection.Selector, solver optimizer.Solver, defaults VehicleDefaults) *Orchestrator {
	return &Orchestrator{
		geocoder: geocoder,
		router:   router,
		selector: selector,
		solver:   solver,
		defaults: defaults,
	}
}

// Plan executes a single plan request end to end.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (*Result, error) {
	requestID := uuid.NewString()

	mpg := orDefault(req.VehicleMPG, o.defaults.MPG)
	tank := orDefault(req.TankCapacityGallons, o.defaults.TankCapacityGal)
	maxRange := orDefault(req.MaxRangeMiles, o.defaults.MaxRangeMiles)
	corridor := orDefault(req.CorridorMiles, o.defaults.CorridorMiles)
	startFuelPercent := orDefault(req.StartFuelPercent, 100)

	startResult, finishResult, err := o.geocodeEndpoints(ctx, req.StartLocation, req.FinishLocation)
	if err != nil {
		return nil, err
	}

	route, err := o.router.RouteThrough(ctx, []geo.Point{startResult.Point, finishResult.Point})
	if err != nil {
		return nil, err
	}

	candidates, err := o.selector.Select(ctx, route.Polyline, corridor)
	if err != nil {
		return nil, err
	}

	startFuelGallons := tank * startFuelPercent / 100

	inputs := optimizer.Inputs{
		Candidates:         candidates,
		RouteDistanceMiles: route.DistanceMiles,
		StartFuelGallons:   startFuelGallons,
		MPG:                mpg,
		TankCapacityGal:    tank,
		MaxRangeMiles:       maxRange,
	}

	optimization, err := o.runOptimizer(ctx, req.Optimizer, inputs)
	if err != nil {
		return nil, err
	}

	log.Printf("plan request_id=%s stops=%d optimizer=%s", requestID, len(optimization.Stops), optimization.OptimizerUsed)

	return &Result{
		Start:             startResult.Point,
		Finish:            finishResult.Point,
		Route:             route,
		Optimization:       optimization,
		EffectiveMPG:      mpg,
		EffectiveRange:    maxRange,
		EffectiveTank:     tank,
		EffectiveCorridor: corridor,
		StartFuelGallons:  startFuelGallons,
	}, nil
}

// geocodeEndpoints resolves start and finish sequentially; issuing them
// concurrently is a valid implementation choice per the specification
// but is not required for correctness, so this keeps the simpler shape.
func (o *Orchestrator) geocodeEndpoints(ctx context.Context, start, finish string) (geocoding.Result, geocoding.Result, error) {
	startResult, err := o.geocoder.Geocode(ctx, start, "us")
	if err != nil {
		return geocoding.Result{}, geocoding.Result{}, err
	}
	finishResult, err := o.geocoder.Geocode(ctx, finish, "us")
	if err != nil {
		return geocoding.Result{}, geocoding.Result{}, err
	}
	return startResult, finishResult, nil
}

func (o *Orchestrator) runOptimizer(ctx context.Context, tag optimizer.Tag, inputs optimizer.Inputs) (*optimizer.OptimizationResult, error) {
	if tag == optimizer.TagOrtools {
		return optimizer.LP(ctx, inputs, o.solver)
	}
	return optimizer.Baseline(inputs)
}

func orDefault(override *float64, fallback float64) float64 {
	if override != nil {
		return *override
	}
	return fallback
}
