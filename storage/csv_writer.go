package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"car-aggregator/models"
)

var csvHeader = []string{
	"rank", "score", "source", "id", "title", "price", "year", "mileage",
	"fuel_type", "transmission", "location", "seller", "rating", "features", "url",
}

// CSVWriter writes ranked listings to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
	rows   int
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends listings in the order given. Rank numbering continues
// across calls.
func (c *CSVWriter) Write(listings []models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range listings {
		c.rows++
		if err := c.writer.Write(csvRow(c.rows, l)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	return c.file.Close()
}

func csvRow(rank int, l models.Listing) []string {
	return []string{
		strconv.Itoa(rank),
		strconv.FormatFloat(l.Score, 'f', 2, 64),
		l.Source,
		l.ID,
		l.Title,
		strconv.Itoa(l.Price),
		optionalInt(l.Year, l.Year > 0),
		optionalIntPtr(l.Mileage),
		l.FuelType,
		l.Transmission,
		l.Location,
		l.SellerName,
		optionalFloatPtr(l.Rating),
		strings.Join(l.Features, "; "),
		l.URL,
	}
}

func optionalInt(v int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(v)
}

func optionalIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
