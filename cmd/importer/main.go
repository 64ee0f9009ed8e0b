package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"address-registry/internal/address"
	"address-registry/internal/config"
	"address-registry/internal/repository"
	"address-registry/internal/service"

	"github.com/rs/zerolog"
)

// Row is one CSV data line with its 1-based line number in the file. Err is
// set when the line cannot be turned into a record.
type Row struct {
	Line   int
	Record address.Record
	Err    error
}

// Summary counts the outcome of an import
type Summary struct {
	Imported   int
	Duplicates int
	Invalid    int
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	dryRun := flag.Bool("dry-run", false, "Validate rows without writing to the configured store")
	migrate := flag.Bool("migrate", false, "Apply schema migrations before importing (postgres store only)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	rows, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(rows))

	ctx := context.Background()

	repo, closeStore, err := openRepository(ctx, "configs", *dryRun, *migrate)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	svc := service.NewAddressService(repo, nil, zerolog.Nop())

	summary, err := importRows(ctx, svc, rows, logger)
	if err != nil {
		fmt.Printf("Error importing records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d records, %d duplicates, %d invalid\n", summary.Imported, summary.Duplicates, summary.Invalid)
	if *dryRun {
		fmt.Println("Dry run: nothing was written")
	}
}

// openRepository returns the store rows are imported into. A dry run uses
// a fresh in-memory store so duplicates inside the file are still reported;
// otherwise the store selected by the configuration in configPath is opened.
func openRepository(ctx context.Context, configPath string, dryRun, migrate bool) (service.AddressRepository, func(), error) {
	if dryRun {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if migrate {
		cfg.MigrateOnStart = true
	}

	return repository.Open(ctx, cfg)
}

func parseCSV(filePath string) ([]Row, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readRows(file)
}

func readRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count is checked per row below

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows []Row
	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(values) != address.NumFields {
			rows = append(rows, Row{
				Line: line,
				Err:  fmt.Errorf("invalid record length: %d, expected %d columns", len(values), address.NumFields),
			})
			continue
		}

		rows = append(rows, Row{Line: line, Record: address.RecordFromValues(values)})
	}

	return rows, nil
}

// importRows stores every row through svc. Malformed, invalid and duplicate
// rows are logged and counted; any other store failure aborts the import.
func importRows(ctx context.Context, svc *service.AddressService, rows []Row, logger zerolog.Logger) (Summary, error) {
	var summary Summary
	for _, row := range rows {
		if row.Err != nil {
			summary.Invalid++
			logger.Warn().Int("line", row.Line).Err(row.Err).Msg("malformed row")
			continue
		}

		_, err := svc.Create(ctx, row.Record)

		var verr *address.ValidationError
		switch {
		case err == nil:
			summary.Imported++
		case errors.As(err, &verr):
			summary.Invalid++
			logger.Warn().Int("line", row.Line).Err(verr).Msg("invalid address")
		case errors.Is(err, address.ErrConflict):
			summary.Duplicates++
			logger.Warn().Int("line", row.Line).Msg("duplicate address")
		default:
			return summary, fmt.Errorf("line %d: %w", row.Line, err)
		}
	}
	return summary, nil
}
