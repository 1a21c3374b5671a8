package commands

import (
	"context"
	"fmt"
	"time"
)

// BackupCommand copies every table file into today's backup directory
type BackupCommand struct {
	config Config
	now    func() time.Time
}

// NewBackupCommand creates a new backup command with the given configuration
func NewBackupCommand(config Config) *BackupCommand {
	return &BackupCommand{
		config: config,
		now:    time.Now,
	}
}

// Execute runs the backup command
func (c *BackupCommand) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	settings, err := c.config.loadSettings()
	if err != nil {
		return err
	}
	app, err := NewApp(settings)
	if err != nil {
		return err
	}

	dir, err := app.Store.Backup(c.now())
	if err != nil {
		return fmt.Errorf("backup to %s incomplete: %w", dir, err)
	}
	if c.config.Verbose {
		fmt.Printf("💾 Tables backed up to: %s\n", dir)
	}
	return nil
}
