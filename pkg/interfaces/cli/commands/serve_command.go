package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/interfaces/api"
)

// ServeCommand runs the startup backup and then serves the command surface
// until the context is canceled.
type ServeCommand struct {
	config Config
}

// NewServeCommand creates a new serve command with the given configuration
func NewServeCommand(config Config) *ServeCommand {
	return &ServeCommand{
		config: config,
	}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	settings, err := c.config.loadSettings()
	if err != nil {
		return err
	}

	app, err := NewApp(settings)
	if err != nil {
		return err
	}

	if settings.Backup.Enabled {
		// Best-effort
		if dir, err := app.Store.Backup(time.Now()); err != nil {
			log.Printf("WARN: startup backup to %s incomplete: %v", dir, err)
		}
	}

	server := &http.Server{
		Addr:              settings.Addr(),
		Handler:           api.NewRouter(app.Workflow, settings.Web.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving ledgers from %s on %s", settings.DataDir, server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	app.Events.Wait()
	log.Printf("Server stopped")
	return nil
}
