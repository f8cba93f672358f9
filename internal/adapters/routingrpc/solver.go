// Package routingrpc implements optimizer.Solver against an external
// linear-program solver reached over gRPC. The solver is treated purely
// as a capability: a nil or unreachable Solver causes the LP planner to
// fall back to the baseline planner, never as an error surfaced to the
// client.
//
// The wire payload uses the protobuf well-known Struct type rather than
// a service-specific generated message, so this package needs no .proto
// file or protoc step: the LP problem is a small, dynamically-shaped
// bag of numbers that a generic Struct represents exactly as well as a
// bespoke message would.
package routingrpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/fuelplanner/internal/domain/optimizer"
)

const solveMethod = "/fuelplanner.solver.v1.Solver/Solve"

// Solver dials an external LP solver service. It implements optimizer.Solver.
type Solver struct {
	conn *grpc.ClientConn
}

// Dial connects to an LP solver service at address. Callers should treat
// a Dial failure as "capability absent" and pass a nil Solver to the LP
// planner rather than propagating the error to the client.
func Dial(address string, timeout time.Duration) (*Solver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to solver service at %s: %w", address, err)
	}
	return &Solver{conn: conn}, nil
}

// Close releases the underlying connection.
func (s *Solver) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Solve implements optimizer.Solver.
func (s *Solver) Solve(ctx context.Context, problem optimizer.LPProblem) (optimizer.LPSolution, error) {
	request, err := problemToStruct(problem)
	if err != nil {
		return optimizer.LPSolution{}, fmt.Errorf("failed to encode LP problem: %w", err)
	}

	response := &structpb.Struct{}
	if err := s.conn.Invoke(ctx, solveMethod, request, response); err != nil {
		return optimizer.LPSolution{}, fmt.Errorf("solver RPC failed: %w", err)
	}

	return structToSolution(response), nil
}

func problemToStruct(problem optimizer.LPProblem) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"point_mileposts":    floatsToAny(problem.PointMileposts),
		"price_per_gallon":   floatsToAny(problem.PricePerGallon),
		"start_fuel_gallons": problem.StartFuelGallons,
		"mpg":                problem.MPG,
		"tank_capacity_gal":  problem.TankCapacityGal,
	})
}

func structToSolution(s *structpb.Struct) optimizer.LPSolution {
	fields := s.GetFields()

	buy := fields["buy_gallons"].GetListValue()
	gallons := make([]float64, 0)
	if buy != nil {
		for _, v := range buy.GetValues() {
			gallons = append(gallons, v.GetNumberValue())
		}
	}

	return optimizer.LPSolution{
		BuyGallons: gallons,
		Optimal:    fields["optimal"].GetBoolValue(),
	}
}

func floatsToAny(values []float64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
