package commands

import (
	"context"
	"fmt"

	"github.com/KJ21-ENG/natraj-metallic/pkg/interfaces/cli/output"
)

// StockCommand prints the stock position across every ledger
type StockCommand struct {
	config Config
}

// NewStockCommand creates a new stock command with the given configuration
func NewStockCommand(config Config) *StockCommand {
	return &StockCommand{
		config: config,
	}
}

// Execute runs the stock command
func (c *StockCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		ShowHelp()
		return nil
	}

	settings, err := c.config.loadSettings()
	if err != nil {
		return err
	}
	app, err := NewApp(settings)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("📂 Reading ledgers from %s\n", settings.DataDir)
	}

	summary, err := app.Workflow.StockSummary(ctx)
	if err != nil {
		return fmt.Errorf("error building stock summary: %w", err)
	}

	return output.Generate(summary, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

// ShowHelp displays the help message
func ShowHelp() {
	fmt.Printf(`Natraj Metallic - production ledger for metallic yarn rolls, boxes and dispatches

USAGE:
    natraj -mode serve  [-config <file>] [-data <dir>]
    natraj -mode backup [-config <file>] [-data <dir>]
    natraj -mode stock  [-format text|json|csv] [-output <dir>]

OPTIONS:
    -config <file>      YAML configuration file (default: natraj.yaml; missing file uses defaults)
    -data <dir>         Data directory holding the table files (overrides data_dir)
    -mode <mode>        serve, backup or stock (default: serve)
    -format <fmt>       Stock output format: text, json, csv (default: text)
    -output <dir>       Output directory for stock results (required for csv)
    -verbose            Enable verbose output
    -debug              Include file and line in log output
    -help               Show this help message

DATA DIRECTORY:
    data/
    ├── rolls.csv  lots.csv  goods_on_machine.csv  boxes.csv  dispatches.csv
    ├── customers.csv  bobbin_types.csv  box_types.csv  machines.csv  inbound_bobbins.csv
    └── backups/YYYY-MM-DD/   # startup copies of every table
`)
}
