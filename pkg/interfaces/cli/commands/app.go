package commands

import (
	"fmt"
	"log"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/services/workflow"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/config"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/events"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/labels"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/flatfile"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/scale"
)

// Config holds configuration shared by every command
type Config struct {
	ConfigFile string
	DataDir    string // overrides data_dir from the config file
	Format     string
	OutputDir  string
	Verbose    bool
	Help       bool
}

// loadSettings reads the config file and applies the command-line overrides
func (c Config) loadSettings() (*config.Config, error) {
	settings, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.DataDir != "" {
		settings.DataDir = c.DataDir
	}
	return settings, nil
}

// App is one process's wiring of store, ledgers, event bus and workflow
type App struct {
	Settings *config.Config
	Store    *csv.Store
	Repos    *flatfile.Repositories
	Events   *events.InMemoryEventStore
	Workflow *workflow.WorkflowService
}

// NewApp builds the ledgers over settings.DataDir and subscribes the label
// renderer when labels are enabled.
func NewApp(settings *config.Config) (*App, error) {
	store := csv.NewStore(settings.DataDir, log.Printf)
	repos := flatfile.New(store, flatfile.Options{
		FirstLotNumber: settings.Ledger.FirstLotNumber,
		IDWidth:        settings.Ledger.IDWidth,
	})

	eventStore := events.NewInMemoryEventStore()
	if settings.Labels.Enabled {
		renderer := labels.NewRenderer(settings.LabelsDir())
		if err := eventStore.Subscribe(renderer.Types(), renderer); err != nil {
			return nil, fmt.Errorf("failed to subscribe label renderer: %w", err)
		}
	}

	wfConfig := workflow.Config{}
	if settings.Scale.ReadingFile != "" {
		wfConfig.WeightSource = scale.NewFileSource(settings.Scale.ReadingFile, settings.Scale.MaxAge)
	}

	service := workflow.NewWorkflowService(workflow.Ledgers{
		Rolls:       repos.Rolls,
		Bobbins:     repos.Bobbins,
		Assignments: repos.Assignments,
		Boxes:       repos.Boxes,
		Dispatches:  repos.Dispatches,
		Reference:   repos.Reference,
	}, eventStore, wfConfig)

	return &App{
		Settings: settings,
		Store:    store,
		Repos:    repos,
		Events:   eventStore,
		Workflow: service,
	}, nil
}
