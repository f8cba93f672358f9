package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrescamacho/fuelplanner/internal/adapters/httpapi"
	"github.com/andrescamacho/fuelplanner/internal/adapters/persistence"
	"github.com/andrescamacho/fuelplanner/internal/adapters/routingrpc"
	"github.com/andrescamacho/fuelplanner/internal/application/planning"
	"github.com/andrescamacho/fuelplanner/internal/application/selection"
	"github.com/andrescamacho/fuelplanner/internal/domain/optimizer"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/cache"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/config"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/database"

	geocodingAdapter "github.com/andrescamacho/fuelplanner/internal/adapters/geocoding"
	routingAdapter "github.com/andrescamacho/fuelplanner/internal/adapters/routing"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to config.yaml search path)")
	flag.Parse()

	fmt.Println("Fuel Planner API")
	fmt.Println("================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	clock := shared.NewRealClock()

	// 1. Database and catalog store
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	fmt.Println("Database connected")

	store := persistence.NewGormStationRepository(db)

	// 2. Shared TTL cache backing both external clients
	backingStore, err := cache.New(cfg.Cache.MaxEntries, clock)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	fmt.Println("Cache initialized")

	// 3. External clients
	geocodeClient := geocodingAdapter.New(
		cfg.Geocoding.BaseURL,
		cfg.Geocoding.UserAgent,
		time.Duration(cfg.Geocoding.TimeoutSeconds)*time.Second,
		cfg.Geocoding.RetryCount,
		clock,
		backingStore,
		time.Duration(cfg.Cache.GeocodeTTLSeconds)*time.Second,
	)
	routingClient := routingAdapter.New(
		cfg.OSRM.BaseURL,
		time.Duration(cfg.OSRM.TimeoutSeconds)*time.Second,
		cfg.OSRM.RetryCount,
		clock,
		backingStore,
		time.Duration(cfg.Cache.RouteTTLSeconds)*time.Second,
	)
	fmt.Println("Geocoding and routing clients initialized")

	// 4. Station selection over the catalog store
	selector := selection.New(store, cfg.Selection.MaxCandidates)

	// 5. Optional external LP solver; a dial failure or unset address
	// degrades to a nil Solver, which the LP planner treats as "capability
	// absent" and falls back to the baseline planner.
	var solver optimizer.Solver
	if cfg.Solver.Address != "" {
		fmt.Printf("Connecting to LP solver at %s...\n", cfg.Solver.Address)
		grpcSolver, err := routingrpc.Dial(cfg.Solver.Address, time.Duration(cfg.Solver.DialTimeoutSeconds)*time.Second)
		if err != nil {
			fmt.Printf("LP solver unavailable (%v); ortools requests will fall back to baseline\n", err)
		} else {
			solver = grpcSolver
			defer grpcSolver.Close()
			fmt.Println("LP solver connected")
		}
	} else {
		fmt.Println("No LP solver configured; ortools requests will fall back to baseline")
	}

	// 6. Plan orchestrator and HTTP handler
	orchestrator := planning.New(geocodeClient, routingClient, selector, solver, planning.VehicleDefaults{
		MPG:             cfg.Vehicle.MPG,
		TankCapacityGal: cfg.Vehicle.TankCapacityGal,
		MaxRangeMiles:   cfg.Vehicle.MaxRangeMiles,
		CorridorMiles:   cfg.Selection.CorridorMiles,
	})
	handler := httpapi.NewHandler(orchestrator)

	mux := http.NewServeMux()
	mux.Handle("/v1/plan", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serverErrs := make(chan error, 1)
	go func() {
		fmt.Printf("Listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrs <- err
		}
	}()

	fmt.Println("\nReady to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		fmt.Printf("Received signal %v, shutting down...\n", sig)
	case err := <-serverErrs:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}
