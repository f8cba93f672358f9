package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	geocodingAdapter "github.com/andrescamacho/fuelplanner/internal/adapters/geocoding"
	"github.com/andrescamacho/fuelplanner/internal/adapters/persistence"
	catalogapp "github.com/andrescamacho/fuelplanner/internal/application/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/cache"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/config"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/database"
)

func NewRunCommand() *cobra.Command {
	var limit int
	var sleep bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Geocode a batch of ungeocoded stations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeocode(limit, sleep, configPath)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Max stations to geocode in one run")
	cmd.Flags().BoolVar(&sleep, "sleep", true, "Pause between requests to stay polite to the geocoding service")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (defaults to config.yaml search path)")

	return cmd
}

func runGeocode(limit int, sleep bool, configPath string) error {
	cfg := config.MustLoadConfig(configPath)
	clock := shared.NewRealClock()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	store := persistence.NewGormStationRepository(db)

	backingStore, err := cache.New(cfg.Cache.MaxEntries, clock)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	geocodeClient := geocodingAdapter.New(
		cfg.Geocoding.BaseURL,
		cfg.Geocoding.UserAgent,
		time.Duration(cfg.Geocoding.TimeoutSeconds)*time.Second,
		cfg.Geocoding.RetryCount,
		clock,
		backingStore,
		time.Duration(cfg.Cache.GeocodeTTLSeconds)*time.Second,
	)

	result, err := catalogapp.GeocodeBatch(context.Background(), store, geocodeClient, clock, catalogapp.GeocodeBatchOptions{
		Limit:                limit,
		SleepBetweenRequests: sleep,
	})
	if err != nil {
		return fmt.Errorf("geocode batch failed: %w", err)
	}

	fmt.Printf("Geocoded %d stations, %d failed\n", result.Geocoded, result.Failed)
	return nil
}
