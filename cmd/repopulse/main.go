// Command repopulse reports recent commit activity across the repositories
// of a GitHub organisation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/repopulse/internal/adapters/driven/config/file"
	"github.com/custodia-labs/repopulse/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/repopulse/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/repopulse/internal/adapters/driving/cli"
	"github.com/custodia-labs/repopulse/internal/connectors/github"
	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
	"github.com/custodia-labs/repopulse/internal/core/services"
)

// Set by the linker.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetWiring(cli.Wiring{
		OpenConfig: func(configDir string) (driven.ConfigStore, error) {
			return file.NewConfigStore(configDir)
		},
		NewSettings: func(store driven.ConfigStore) driving.SettingsService {
			return services.NewSettingsService(store, os.Getenv)
		},
		Connect:    connect,
		OpenRuns:   openRuns,
		MemoryRuns: memoryRuns,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context, gh domain.GitHubSettings, runs driven.RunStore) (*cli.Session, error) {
	client, err := github.NewClient(ctx, github.OptionsFromSettings(gh))
	if err != nil {
		return nil, err
	}
	return &cli.Session{
		Traverser: services.NewTraversalOrchestrator(client, client),
		Resolver:  services.NewCommitResolverService(client, runs),
		Account:   services.NewAccountService(client),
	}, nil
}

func openRuns(dataDir string) (*cli.RunHistory, error) {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, err
	}
	return &cli.RunHistory{
		Service: services.NewRunService(store),
		Store:   store,
		Close:   store.Close,
	}, nil
}

func memoryRuns() *cli.RunHistory {
	store := memory.NewRunStore()
	return &cli.RunHistory{
		Service: services.NewRunService(store),
		Store:   store,
	}
}
