package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long:  `Lists the runs recorded with "scan --store", newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run",
	Long:  `Prints one recorded run with the commit details resolved for it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(showCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	history, err := openStoredRuns()
	if err != nil {
		return err
	}
	if history.Close != nil {
		defer func() { _ = history.Close() }()
	}

	runs, err := history.Service.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	newPrinter(cmd).Runs(runs)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	history, err := openStoredRuns()
	if err != nil {
		return err
	}
	if history.Close != nil {
		defer func() { _ = history.Close() }()
	}

	run, details, err := history.Service.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	newPrinter(cmd).Run(run, details)
	return nil
}

// openStoredRuns opens the persistent store at the configured data dir.
func openStoredRuns() (*RunHistory, error) {
	if err := loadConfig(); err != nil {
		return nil, err
	}
	if wiring.OpenRuns == nil {
		return nil, errors.New("run store not wired")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	history, err := wiring.OpenRuns(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	return history, nil
}
