// Command import-sales loads sale records from an .xlsx or .csv export
// into the store. Rows are stored as documents under their file's own
// column labels, so both the current camelCase exports and the older
// "Title Case" spreadsheets import without remapping. Rows that fail
// validation are reported and skipped; duplicate transaction IDs are
// skipped, not treated as failures.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/salesdash/api/internal/config"
	"github.com/salesdash/api/internal/db"
	"github.com/salesdash/api/internal/domain"
	"github.com/salesdash/api/internal/repository"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

func main() {
	var (
		filePath   = flag.String("file", "", "path to the .xlsx or .csv file to import")
		configPath = flag.String("config", ".", "directory containing config.yaml")
		dryRun     = flag.Bool("dry-run", false, "validate rows without inserting")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *filePath == "" {
		logger.Fatal("missing required -file flag")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	ctx := context.Background()

	conn, err := db.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	rows, err := readRows(*filePath)
	if err != nil {
		logger.WithError(err).Fatal("failed to read input file")
	}
	if len(rows) < 2 {
		logger.Fatal("input file has no data rows")
	}

	repo := repository.NewSaleRepository(conn.Pool)
	summary := importRows(ctx, logger, repo, rows, *dryRun)

	logger.WithFields(logrus.Fields{
		"inserted":   summary.inserted,
		"duplicates": summary.duplicates,
		"invalid":    summary.invalid,
		"failed":     summary.failed,
	}).Info("import finished")

	if summary.failed > 0 {
		os.Exit(1)
	}
}

type importSummary struct {
	inserted   int
	duplicates int
	invalid    int
	failed     int
}

func importRows(ctx context.Context, logger *logrus.Logger, repo repository.SaleRepository, rows [][]string, dryRun bool) importSummary {
	validate := validator.New()
	headers := rows[0]

	var summary importSummary
	for i, row := range rows[1:] {
		rowNumber := i + 2

		doc := rowDocument(headers, row)
		if len(doc) == 0 {
			continue
		}

		sale := domain.AdaptSale(uuid.Nil, doc)
		if err := validate.Struct(sale); err != nil {
			summary.invalid++
			logger.WithFields(logrus.Fields{
				"row":           rowNumber,
				"transactionId": sale.TransactionID,
			}).WithError(err).Warn("skipping invalid row")
			continue
		}

		if dryRun {
			summary.inserted++
			continue
		}

		if _, err := repo.InsertDocument(ctx, doc); err != nil {
			classified := domain.ClassifyStoreError(err)

			var duplicateErr *domain.DuplicateKeyError
			if errors.As(classified, &duplicateErr) {
				summary.duplicates++
				logger.WithFields(logrus.Fields{
					"row":           rowNumber,
					"transactionId": sale.TransactionID,
				}).Debug("skipping duplicate transaction")
				continue
			}

			summary.failed++
			logger.WithFields(logrus.Fields{"row": rowNumber}).WithError(err).Error("failed to insert row")
			continue
		}
		summary.inserted++
	}
	return summary
}

// rowDocument pairs each header label with its cell value, dropping empty
// cells so the adapter's defaults apply instead of empty strings.
func rowDocument(headers, row []string) domain.Document {
	doc := domain.Document{}
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" || i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		doc[header] = value
	}
	return doc
}

func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readExcelRows(path)
	case ".csv":
		return readCSVRows(path)
	default:
		return nil, errors.New("unsupported file format, expected .xlsx or .csv")
	}
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	head, err := reader.Peek(len(byteOrderMark))
	if err == nil && bytes.Equal(head, byteOrderMark) {
		if _, err := reader.Discard(len(byteOrderMark)); err != nil {
			return nil, err
		}
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}
