// Package httpapi is the JSON request/response boundary: decoding and
// validating PlanRequest, invoking the orchestrator, and encoding
// PlanResponse or an error envelope.
package httpapi

// PlanRequest is the plan endpoint's request body. Unknown fields are
// rejected by the decoder, not by a struct tag.
type PlanRequest struct {
	StartLocation       string   `json:"start_location" validate:"required,min=3,max=300"`
	FinishLocation      string   `json:"finish_location" validate:"required,min=3,max=300"`
	StartFuelPercent    *float64 `json:"start_fuel_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	CorridorMiles       *float64 `json:"corridor_miles,omitempty" validate:"omitempty,gte=1,lte=50"`
	VehicleMPG          *float64 `json:"vehicle_mpg,omitempty" validate:"omitempty,gt=0,lte=100"`
	TankCapacityGallons *float64 `json:"tank_capacity_gallons,omitempty" validate:"omitempty,gt=0,lte=300"`
	MaxRangeMiles       *float64 `json:"max_range_miles,omitempty" validate:"omitempty,gt=0,lte=2000"`
	Optimizer           string   `json:"optimizer,omitempty" validate:"omitempty,oneof=baseline ortools"`
}

type latLon struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geoJSONLineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// FuelStop is one purchase in the plan response.
type FuelStop struct {
	StationID              string  `json:"station_id"`
	StationName            string  `json:"station_name"`
	Address                string  `json:"address"`
	City                   string  `json:"city"`
	State                  string  `json:"state"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	Milepost               float64 `json:"milepost"`
	DistanceFromRouteMiles float64 `json:"distance_from_route_miles"`
	PricePerGallon         float64 `json:"price_per_gallon"`
	GallonsPurchased       float64 `json:"gallons_purchased"`
	Cost                   float64 `json:"cost"`
	FuelBeforeGallons      float64 `json:"fuel_before_gallons"`
	FuelAfterGallons       float64 `json:"fuel_after_gallons"`
}

type summary struct {
	DistanceMiles               float64 `json:"distance_miles"`
	DurationMinutes             float64 `json:"duration_minutes"`
	TotalGallonsPurchased       float64 `json:"total_gallons_purchased"`
	TotalFuelCost               float64 `json:"total_fuel_cost"`
	EstimatedFuelNeededGallons  float64 `json:"estimated_fuel_needed_gallons"`
}

type assumptions struct {
	VehicleMPG          float64 `json:"vehicle_mpg"`
	MaxRangeMiles       float64 `json:"max_range_miles"`
	TankCapacityGallons float64 `json:"tank_capacity_gallons"`
	CorridorMiles       float64 `json:"corridor_miles"`
}

// PlanResponse is the plan endpoint's success body.
type PlanResponse struct {
	Start          latLon            `json:"start"`
	Finish         latLon            `json:"finish"`
	OptimizerUsed  string            `json:"optimizer_used"`
	RouteGeoJSON   geoJSONLineString `json:"route_geojson"`
	Stops          []FuelStop        `json:"stops"`
	Summary        summary           `json:"summary"`
	Assumptions    assumptions       `json:"assumptions"`
}

// errorBody is the error envelope's nested object.
type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// errorResponse is the error endpoint's body: {"error": {...}}.
type errorResponse struct {
	Error errorBody `json:"error"`
}
