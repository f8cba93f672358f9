package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	catalogapp "github.com/andrescamacho/fuelplanner/internal/application/catalog"
	"github.com/andrescamacho/fuelplanner/internal/adapters/persistence"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/config"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/database"
)

// requiredColumns are the OPIS truckstop feed headers this command expects,
// matching the source CSV this system has always ingested.
var requiredColumns = []string{
	"OPIS Truckstop ID", "Truckstop Name", "Address", "City", "State", "Rack ID", "Retail Price",
}

func NewLoadCommand() *cobra.Command {
	var csvPath string
	var replace bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load and normalize a fuel-price CSV into the catalog store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(csvPath, replace, configPath)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv-path", "", "Path to the fuel prices CSV (required)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete existing stations before importing")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (defaults to config.yaml search path)")
	_ = cmd.MarkFlagRequired("csv-path")

	return cmd
}

func runLoad(csvPath string, replace bool, configPath string) error {
	cfg := config.MustLoadConfig(configPath)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	store := persistence.NewGormStationRepository(db)
	normalizer := catalogapp.New(store)

	rows, err := readRows(csvPath)
	if err != nil {
		return err
	}
	fmt.Printf("Read %d rows from %s\n", len(rows), csvPath)

	count, err := normalizer.Ingest(context.Background(), rows, replace)
	if err != nil {
		return fmt.Errorf("failed to ingest catalog: %w", err)
	}

	fmt.Printf("Imported %d stations (deduplicated, cheapest price per address)\n", count)
	return nil
}

func readRows(csvPath string) ([]catalogapp.Row, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("csv file does not exist: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing expected column: %s", col)
		}
	}

	var rows []catalogapp.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		rows = append(rows, catalogapp.Row{
			TruckstopID: record[index["OPIS Truckstop ID"]],
			Name:        record[index["Truckstop Name"]],
			Address:     record[index["Address"]],
			City:        record[index["City"]],
			State:       record[index["State"]],
			RackID:      record[index["Rack ID"]],
			RetailPrice: record[index["Retail Price"]],
		})
	}

	return rows, nil
}
