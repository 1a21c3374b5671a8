package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		ConfigFile: filepath.Join(dir, "natraj.yaml"),
		DataDir:    filepath.Join(dir, "data"),
		OutputDir:  filepath.Join(dir, "out"),
	}
}

func TestNewApp_WiresLedgersAndLabels(t *testing.T) {
	config := testConfig(t)
	settings, err := config.loadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if settings.DataDir != config.DataDir {
		t.Errorf("Expected data dir override, got %s", settings.DataDir)
	}

	app, err := NewApp(settings)
	if err != nil {
		t.Fatalf("Failed to build app: %v", err)
	}

	ctx := context.Background()
	if _, err := app.Workflow.CreateLot(ctx, "", time.Time{}, []entities.RollSpec{
		{CustomerName: "Acme", Weight: decimal.RequireFromString("20")},
	}); err != nil {
		t.Fatalf("Failed to create lot: %v", err)
	}
	if _, err := app.Workflow.IssueToMachine(ctx, "1001-1", entities.IssueDetails{MachineNumber: "M1"}); err != nil {
		t.Fatalf("Failed to issue: %v", err)
	}
	result, err := app.Workflow.ReceiveBoxes(ctx, "1001-1", []entities.BoxSpec{
		{GrossWeight: decimal.RequireFromString("20")},
	}, false)
	if err != nil {
		t.Fatalf("Failed to receive: %v", err)
	}
	app.Events.Wait()

	label := filepath.Join(settings.LabelsDir(), "box_label_"+result.Boxes[0].BoxID+".html")
	if _, err := os.Stat(label); err != nil {
		t.Errorf("Expected box label written: %v", err)
	}

	if _, err := app.Workflow.CaptureGrossWeight(ctx); err == nil {
		t.Errorf("Expected capture to fail with no scale configured")
	}
}

func TestBackupCommand(t *testing.T) {
	config := testConfig(t)
	settings, err := config.loadSettings()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	app, err := NewApp(settings)
	if err != nil {
		t.Fatalf("Failed to build app: %v", err)
	}
	if _, err := app.Workflow.GetNextLotNumber(context.Background()); err != nil {
		t.Fatalf("Failed to read lots: %v", err)
	}

	cmd := NewBackupCommand(config)
	cmd.now = func() time.Time { return time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC) }
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Failed to back up: %v", err)
	}

	backup := filepath.Join(config.DataDir, "backups", "2025-03-14", "lots.csv")
	if _, err := os.Stat(backup); err != nil {
		t.Errorf("Expected lots table in backup: %v", err)
	}
}

func TestStockCommand_CSV(t *testing.T) {
	config := testConfig(t)
	config.Format = "csv"

	if err := NewStockCommand(config).Execute(context.Background()); err != nil {
		t.Fatalf("Failed to run stock command: %v", err)
	}
	for _, name := range []string{"roll_stock.csv", "bobbin_stock.csv"} {
		if _, err := os.Stat(filepath.Join(config.OutputDir, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
}

func TestServeCommand_StopsOnCancel(t *testing.T) {
	config := testConfig(t)
	if err := os.WriteFile(config.ConfigFile, []byte("web:\n  port: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServeCommand(config).Execute(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
