package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/KJ21-ENG/natraj-metallic/pkg/interfaces/cli/commands"
)

type command interface {
	Execute(ctx context.Context) error
}

func main() {
	// Command line flags
	var (
		configFile = flag.String("config", "natraj.yaml", "Path to YAML configuration file")
		dataDir    = flag.String("data", "", "Data directory holding the table files (overrides config)")
		mode       = flag.String("mode", "serve", "Mode: serve, backup, stock")
		format     = flag.String("format", "text", "Stock output format: text, json, csv")
		outputDir  = flag.String("output", "", "Output directory for stock results (optional)")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		debug      = flag.Bool("debug", false, "Include file and line in log output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	if *help {
		commands.ShowHelp()
		return
	}

	// Create command configuration
	config := commands.Config{
		ConfigFile: *configFile,
		DataDir:    *dataDir,
		Format:     *format,
		OutputDir:  *outputDir,
		Verbose:    *verbose,
	}

	var cmd command
	switch *mode {
	case "serve":
		cmd = commands.NewServeCommand(config)
	case "backup":
		cmd = commands.NewBackupCommand(config)
	case "stock":
		cmd = commands.NewStockCommand(config)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (expected serve, backup or stock)\n", *mode)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
