package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the GitHub token and remaining quota",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if wiring.Connect == nil {
		return errors.New("github connection not wired")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	ctx := commandContext(cmd)
	session, err := wiring.Connect(ctx, settings.GitHub, nil)
	if err != nil {
		return fmt.Errorf("connect to github: %w", err)
	}

	status, err := session.Account.Status(ctx)
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}
	newPrinter(cmd).Status(status)
	return nil
}
