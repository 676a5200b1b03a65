package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"property-price-api/internal/config"
	"property-price-api/internal/models"
	"property-price-api/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Expected CSV columns:
// prefecture,municipality,address_1,price,area,building_year,sold_at
const expectedColumns = 7

func main() {
	file := flag.String("file", "", "Path to the CSV file of historical sale records to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgxpool.New(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)

	// Ensure tables exist
	if err := repo.EnsureSchema(context.Background()); err != nil {
		fmt.Printf("Error creating tables: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	inserted, err := repo.InsertSaleRecords(context.Background(), records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", inserted)
}

func parseCSV(filePath string) ([]models.SaleRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []models.SaleRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < expectedColumns {
			return nil, fmt.Errorf("invalid record length: %d, expected at least %d columns", len(record), expectedColumns)
		}

		price, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %s", record[3])
		}

		area, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid area: %s", record[4])
		}

		buildingYear, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, fmt.Errorf("invalid building year: %s", record[5])
		}

		soldAt, err := time.Parse("2006-01-02", record[6])
		if err != nil {
			return nil, fmt.Errorf("invalid sold_at date: %s", record[6])
		}

		sale := models.SaleRecord{
			Prefecture:   record[0],
			Municipality: record[1],
			Address1:     record[2],
			Price:        price,
			Area:         area,
			BuildingYear: buildingYear,
			SoldAt:       soldAt,
		}

		records = append(records, sale)
	}

	return records, nil
}
