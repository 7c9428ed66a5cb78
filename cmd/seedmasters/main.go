// Command seedmasters converts a master-data Excel workbook into a SQL seed
// file. Reads the Ledgers and StockItems sheets.
// Usage: go run ./cmd/seedmasters masters.xlsx
// Output: db/seeds/masters.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type ledgerEntry struct {
	name    string
	state   string
	regType string
	gstin   string
}

type stockEntry struct {
	name    string
	gstRate float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "masters.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/masters.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ledgers, err := parseLedgerSheet(f)
	if err != nil {
		return fmt.Errorf("parse Ledgers sheet: %w", err)
	}
	log.Printf("Ledgers sheet: %d entries", len(ledgers))

	items, err := parseStockSheet(f)
	if err != nil {
		return fmt.Errorf("parse StockItems sheet: %w", err)
	}
	log.Printf("StockItems sheet: %d entries", len(items))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Ledger and stock item seed data generated from Excel.",
		fmt.Sprintf("-- %d ledgers, %d stock items in batches of %d.", len(ledgers), len(items), batchSize),
		"-- Run: make seed-masters",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(ledgers); i += batchSize {
		end := i + batchSize
		if end > len(ledgers) {
			end = len(ledgers)
		}
		if err := writeLedgerBatch(out, ledgers[i:end]); err != nil {
			return fmt.Errorf("write ledger batch at offset %d: %w", i, err)
		}
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := writeStockBatch(out, items[i:end]); err != nil {
			return fmt.Errorf("write stock batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d ledgers and %d stock items in %s", len(ledgers), len(items), outPath)
	return nil
}

// validRegTypes maps accepted spellings to the canonical registration type.
var validRegTypes = map[string]string{
	"registered":   "registered",
	"unregistered": "unregistered",
	"composition":  "composition",
	"regular":      "registered",
	"urd":          "unregistered",
}

// parseLedgerSheet reads the Ledgers sheet.
// Columns: A=Name, B=State, C=Registration Type, D=GSTIN. Header on row 1.
func parseLedgerSheet(f *excelize.File) ([]ledgerEntry, error) {
	rows, err := f.GetRows("Ledgers")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []ledgerEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		regType := validRegTypes[strings.ToLower(strings.TrimSpace(cellVal(row, 2)))]
		if regType == "" {
			regType = "unregistered"
		}
		entries = append(entries, ledgerEntry{
			name:    name,
			state:   strings.TrimSpace(cellVal(row, 1)),
			regType: regType,
			gstin:   strings.ToUpper(strings.TrimSpace(cellVal(row, 3))),
		})
	}
	return entries, nil
}

// parseStockSheet reads the StockItems sheet.
// Columns: A=Name, B=GST Rate (percentage, "%" suffix tolerated). Header on
// row 1.
func parseStockSheet(f *excelize.File) ([]stockEntry, error) {
	rows, err := f.GetRows("StockItems")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []stockEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		rateStr := strings.TrimSuffix(strings.TrimSpace(cellVal(row, 1)), "%")
		var rate float64
		if rateStr != "" {
			if _, serr := fmt.Sscanf(rateStr, "%f", &rate); serr != nil {
				log.Printf("row %d: unparseable GST rate %q for %q, defaulting", i+1, rateStr, name)
				rate = 0
			}
		}
		entries = append(entries, stockEntry{name: name, gstRate: rate})
	}
	return entries, nil
}

func writeLedgerBatch(out *os.File, batch []ledgerEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ledgers (id, name, state, registration_type, gstin) VALUES\n")
	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', '%s', '%s')",
			escapeSQL(e.name), escapeSQL(e.state), e.regType, escapeSQL(e.gstin))
	}
	b.WriteString("\nON CONFLICT DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func writeStockBatch(out *os.File, batch []stockEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO stock_items (id, name, gst_rate) VALUES\n")
	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', %.2f)", escapeSQL(e.name), e.gstRate)
	}
	b.WriteString("\nON CONFLICT DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
