package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/repopulse/internal/adapters/driving/report"
	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
	"github.com/custodia-labs/repopulse/internal/logger"
)

var (
	version = "dev"

	verbose   bool
	logLevel  string
	noColor   bool
	configDir string

	configStore     driven.ConfigStore
	settingsService driving.SettingsService
	wiring          Wiring
)

// Session holds the services bound to one GitHub connection.
type Session struct {
	Traverser driving.Traverser
	Resolver  driving.CommitResolver
	Account   driving.AccountService
}

// RunHistory is an opened run store and the service reading it.
type RunHistory struct {
	Service driving.RunService
	Store   driven.RunStore

	// Close releases the store. May be nil.
	Close func() error
}

// ConnectFunc opens a GitHub session. runs receives commit details when non-nil.
type ConnectFunc func(ctx context.Context, gh domain.GitHubSettings, runs driven.RunStore) (*Session, error)

// OpenRunsFunc opens the persistent run store under dataDir.
// An empty dataDir selects the default location.
type OpenRunsFunc func(dataDir string) (*RunHistory, error)

// Wiring supplies the adapters the commands run against.
type Wiring struct {
	OpenConfig  func(configDir string) (driven.ConfigStore, error)
	NewSettings func(store driven.ConfigStore) driving.SettingsService
	Connect     ConnectFunc
	OpenRuns    OpenRunsFunc

	// MemoryRuns opens a throwaway run store used when --store is off.
	MemoryRuns func() *RunHistory
}

var rootCmd = &cobra.Command{
	Use:   "repopulse",
	Short: "Report recent commit activity across an organisation's repositories",
	Long: `repopulse searches a GitHub organisation for repositories pushed since a
point in time, filters them by name pattern and collects every commit on the
configured branch.

Run "repopulse config set organization <org>" to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return applyLogLevel()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (warn, info, debug)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.repopulse)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetWiring installs the adapters the commands use.
func SetWiring(w Wiring) {
	wiring = w
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func applyLogLevel() error {
	if logLevel != "" {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	}
	logger.SetVerbose(verbose)
	return nil
}

// loadConfig opens the config store and settings service on first use.
func loadConfig() error {
	if configStore != nil && settingsService != nil {
		return nil
	}
	if wiring.OpenConfig == nil || wiring.NewSettings == nil {
		return errors.New("configuration not wired")
	}

	store, err := wiring.OpenConfig(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = store
	settingsService = wiring.NewSettings(store)
	return nil
}

// commandContext returns the context of cmd, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// stylesFor picks styled output only for a colour-capable terminal.
func stylesFor(cmd *cobra.Command) *report.Styles {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return report.PlainStyles()
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return report.PlainStyles()
	}
	return report.DefaultStyles()
}

func newPrinter(cmd *cobra.Command) *report.Printer {
	return report.NewPrinter(cmd.OutOrStdout(), stylesFor(cmd))
}
