package httpapi

import (
	"math"

	"github.com/andrescamacho/fuelplanner/internal/application/planning"
)

func round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// toPlanResponse assembles the response shape, rounding coordinates to
// 6 decimals, mileposts and gallons to 3 decimals, and costs to 2
// decimals, per the orchestrator's response-assembly step.
func toPlanResponse(result *planning.Result) PlanResponse {
	coordinates := make([][2]float64, len(result.Route.Polyline))
	for i, p := range result.Route.Polyline {
		coordinates[i] = [2]float64{round(p.Lon, 6), round(p.Lat, 6)}
	}

	stops := make([]FuelStop, len(result.Optimization.Stops))
	for i, stop := range result.Optimization.Stops {
		station := stop.Candidate.Station
		lat, lon := 0.0, 0.0
		if station.Lat != nil {
			lat = *station.Lat
		}
		if station.Lon != nil {
			lon = *station.Lon
		}
		stops[i] = FuelStop{
			StationID:              station.ID,
			StationName:            station.Name,
			Address:                station.Address,
			City:                   station.City,
			State:                  station.State,
			Latitude:               round(lat, 6),
			Longitude:              round(lon, 6),
			Milepost:               round(stop.Candidate.MilepostMiles, 3),
			DistanceFromRouteMiles: round(stop.Candidate.OffRouteMiles, 3),
			PricePerGallon:         round(station.RetailPrice, 3),
			GallonsPurchased:       round(stop.GallonsPurchased, 3),
			Cost:                   round(stop.CostDollars, 2),
			FuelBeforeGallons:      round(stop.FuelBeforeGallons, 3),
			FuelAfterGallons:       round(stop.FuelAfterGallons, 3),
		}
	}

	estimatedFuelNeeded := result.Route.DistanceMiles / result.EffectiveMPG

	return PlanResponse{
		Start:         latLon{Latitude: round(result.Start.Lat, 6), Longitude: round(result.Start.Lon, 6)},
		Finish:        latLon{Latitude: round(result.Finish.Lat, 6), Longitude: round(result.Finish.Lon, 6)},
		OptimizerUsed: string(result.Optimization.OptimizerUsed),
		RouteGeoJSON:  geoJSONLineString{Type: "LineString", Coordinates: coordinates},
		Stops:         stops,
		Summary: summary{
			DistanceMiles:              round(result.Route.DistanceMiles, 3),
			DurationMinutes:            round(result.Route.DurationSeconds/60, 3),
			TotalGallonsPurchased:      round(result.Optimization.TotalGallons, 3),
			TotalFuelCost:              round(result.Optimization.TotalCost, 2),
			EstimatedFuelNeededGallons: round(estimatedFuelNeeded, 3),
		},
		Assumptions: assumptions{
			VehicleMPG:          result.EffectiveMPG,
			MaxRangeMiles:       result.EffectiveRange,
			TankCapacityGallons: result.EffectiveTank,
			CorridorMiles:       result.EffectiveCorridor,
		},
	}
}
