package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/dto"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

func sampleSummary() *dto.StockSummary {
	return &dto.StockSummary{
		GeneratedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Rolls: []dto.RollStock{
			{Status: entities.RollInStock, Count: 3, Weight: decimal.RequireFromString("250.5")},
			{Status: entities.RollIssuedToMachine, Count: 1, Weight: decimal.RequireFromString("100")},
			{Status: entities.RollCompleted, Weight: decimal.Zero},
		},
		Bobbins:          []dto.BobbinStock{{BobbinType: "A", Quantity: 40, Entries: 2}},
		OnMachine:        1,
		PendingOnMachine: decimal.RequireFromString("40"),
		ReadyBoxes:       2,
		ReadyWeight:      decimal.RequireFromString("60"),
		DispatchedWeight: decimal.Zero,
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleSummary(), Config{Format: "text", Writer: &buf}); err != nil {
		t.Fatalf("Failed to generate text output: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"2025-03-14", "in_stock", "250.50", "40.00 kg pending", "Boxes ready: 2 (60.00 kg)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(sampleSummary(), Config{Format: "json", Writer: &buf}); err != nil {
		t.Fatalf("Failed to generate JSON output: %v", err)
	}

	var decoded dto.StockSummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode JSON output: %v", err)
	}
	if len(decoded.Rolls) != 3 || !decoded.Rolls[0].Weight.Equal(decimal.RequireFromString("250.5")) {
		t.Errorf("Unexpected rolls after decode: %+v", decoded.Rolls)
	}
}

func TestGenerate_CSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := Generate(sampleSummary(), Config{Format: "csv", OutputDir: dir}); err != nil {
		t.Fatalf("Failed to generate CSV output: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "roll_stock.csv"))
	if err != nil {
		t.Fatalf("Failed to read roll stock: %v", err)
	}
	want := "status,count,weight\nin_stock,3,250.50\nissued_to_machine,1,100.00\ncompleted,0,0.00\n"
	if string(data) != want {
		t.Errorf("Unexpected roll stock CSV:\n%s", data)
	}

	data, err = os.ReadFile(filepath.Join(dir, "bobbin_stock.csv"))
	if err != nil {
		t.Fatalf("Failed to read bobbin stock: %v", err)
	}
	if string(data) != "bobbin_type,quantity,entries\nA,40,2\n" {
		t.Errorf("Unexpected bobbin stock CSV:\n%s", data)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"unknown format", Config{Format: "xml"}},
		{"csv without directory", Config{Format: "csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Generate(sampleSummary(), tt.config); err == nil {
				t.Errorf("Expected an error")
			}
		})
	}
}
