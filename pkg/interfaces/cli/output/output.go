package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/dto"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives text and json output; nil means stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(summary *dto.StockSummary, config Config) error {
	switch config.Format {
	case "", "text":
		return generateTextOutput(summary, config)
	case "json":
		return generateJSONOutput(summary, config)
	case "csv":
		return generateCSVOutput(summary, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(summary *dto.StockSummary, config Config) error {
	w := config.writer()

	fmt.Fprintf(w, "📊 Stock Summary (%s)\n", summary.GeneratedAt.Format(entities.DateLayout))
	fmt.Fprintf(w, "==============================\n\n")

	fmt.Fprintf(w, "🧵 Rolls:\n")
	fmt.Fprintf(w, "%-20s %-8s %-12s\n", "Status", "Count", "Weight (kg)")
	fmt.Fprintf(w, "%-20s %-8s %-12s\n", "--------------------", "--------", "------------")
	for _, r := range summary.Rolls {
		fmt.Fprintf(w, "%-20s %-8d %-12s\n", r.Status, r.Count, r.Weight.StringFixed(2))
	}
	fmt.Fprintln(w)

	if len(summary.Bobbins) > 0 {
		fmt.Fprintf(w, "📦 Bobbins Available:\n")
		fmt.Fprintf(w, "%-20s %-10s %-8s\n", "Bobbin Type", "Quantity", "Entries")
		fmt.Fprintf(w, "%-20s %-10s %-8s\n", "--------------------", "----------", "--------")
		for _, b := range summary.Bobbins {
			fmt.Fprintf(w, "%-20s %-10d %-8d\n", b.BobbinType, b.Quantity, b.Entries)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "On machine: %d roll(s), %s kg pending\n", summary.OnMachine, summary.PendingOnMachine.StringFixed(2))
	fmt.Fprintf(w, "Boxes ready: %d (%s kg)\n", summary.ReadyBoxes, summary.ReadyWeight.StringFixed(2))
	fmt.Fprintf(w, "Boxes dispatched: %d in %d dispatch(es), %s kg\n",
		summary.DispatchedBoxes, summary.Dispatches, summary.DispatchedWeight.StringFixed(2))
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(summary *dto.StockSummary, config Config) error {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "stock_summary.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one file per section
func generateCSVOutput(summary *dto.StockSummary, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rollsFile := filepath.Join(config.OutputDir, "roll_stock.csv")
	if err := writeRollsCSV(summary.Rolls, rollsFile); err != nil {
		return fmt.Errorf("failed to write roll stock CSV: %w", err)
	}

	bobbinsFile := filepath.Join(config.OutputDir, "bobbin_stock.csv")
	if err := writeBobbinsCSV(summary.Bobbins, bobbinsFile); err != nil {
		return fmt.Errorf("failed to write bobbin stock CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		fmt.Printf("  Rolls: %s\n", rollsFile)
		fmt.Printf("  Bobbins: %s\n", bobbinsFile)
	}
	return nil
}

func writeRollsCSV(rolls []dto.RollStock, filename string) error {
	records := [][]string{{"status", "count", "weight"}}
	for _, r := range rolls {
		records = append(records, []string{string(r.Status), strconv.Itoa(r.Count), r.Weight.StringFixed(2)})
	}
	return writeCSV(filename, records)
}

func writeBobbinsCSV(bobbins []dto.BobbinStock, filename string) error {
	records := [][]string{{"bobbin_type", "quantity", "entries"}}
	for _, b := range bobbins {
		records = append(records, []string{b.BobbinType, strconv.FormatInt(b.Quantity, 10), strconv.Itoa(b.Entries)})
	}
	return writeCSV(filename, records)
}

func writeCSV(filename string, records [][]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
