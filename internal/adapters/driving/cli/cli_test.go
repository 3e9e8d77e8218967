package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/repopulse/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
	"github.com/custodia-labs/repopulse/internal/core/services"
)

// mockTraverser implements driving.Traverser for testing.
type mockTraverser struct {
	result *domain.TraversalResult
	err    error
	calls  []domain.TraversalRequest
}

func (m *mockTraverser) Traverse(_ context.Context, req domain.TraversalRequest) (*domain.TraversalResult, error) {
	m.calls = append(m.calls, req)
	return m.result, m.err
}

// mockResolver implements driving.CommitResolver for testing.
type mockResolver struct {
	summary *driving.ResolveSummary
	err     error
	calls   []driving.ResolveRequest
}

func (m *mockResolver) Resolve(_ context.Context, req driving.ResolveRequest) (*driving.ResolveSummary, error) {
	m.calls = append(m.calls, req)
	return m.summary, m.err
}

// mockAccount implements driving.AccountService for testing.
type mockAccount struct {
	status *domain.AccountStatus
	err    error
}

func (m *mockAccount) Status(_ context.Context) (*domain.AccountStatus, error) {
	return m.status, m.err
}

// testEnv is the state one CLI test runs against.
type testEnv struct {
	config    *memory.ConfigStore
	runs      *memory.RunStore
	traverser *mockTraverser
	resolver  *mockResolver
	account   *mockAccount

	// connected records the run store handed to each Connect call.
	connected []driven.RunStore
}

// setupCLITest installs in-memory wiring and restores the globals afterwards.
func setupCLITest(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		config:    memory.NewConfigStore(),
		runs:      memory.NewRunStore(),
		traverser: &mockTraverser{result: sampleResult()},
		resolver:  &mockResolver{summary: &driving.ResolveSummary{}},
		account:   &mockAccount{},
	}

	oldStore, oldSettings, oldWiring := configStore, settingsService, wiring
	configStore = env.config
	settingsService = services.NewSettingsService(env.config, nil)
	wiring = Wiring{
		Connect: func(_ context.Context, _ domain.GitHubSettings, runs driven.RunStore) (*Session, error) {
			env.connected = append(env.connected, runs)
			return &Session{Traverser: env.traverser, Resolver: env.resolver, Account: env.account}, nil
		},
		OpenRuns: func(_ string) (*RunHistory, error) {
			return &RunHistory{Service: services.NewRunService(env.runs), Store: env.runs}, nil
		},
		MemoryRuns: func() *RunHistory {
			store := memory.NewRunStore()
			return &RunHistory{Service: services.NewRunService(store), Store: store}
		},
	}
	resetFlags(rootCmd)

	t.Cleanup(func() {
		configStore, settingsService, wiring = oldStore, oldSettings, oldWiring
		resetFlags(rootCmd)
	})
	return env
}

// configure stores a scannable configuration.
func (e *testEnv) configure(t *testing.T) {
	t.Helper()
	for key, value := range map[string]any{
		services.KeyOrganization: "acme",
		services.KeyToken:        "ghp_test_token_value",
		services.KeySince:        "2017-04-05T06:00:00Z",
	} {
		if err := e.config.Set(key, value); err != nil {
			t.Fatal(err)
		}
	}
}

// execute runs the root command with args and returns everything printed.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags returns every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func sampleResult() *domain.TraversalResult {
	result := domain.NewTraversalResult()
	result.RepositoryCount = 3
	result.Seen = 3
	result.Qualified = []string{"almCore", "webTool"}
	result.Disqualified = []string{"otherLib"}
	result.Commits["almCore"] = []string{"sha1", "sha2"}
	result.Commits["webTool"] = []string{"sha3"}
	return result
}
