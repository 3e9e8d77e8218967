package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/custodia-labs/repopulse/internal/core/domain"
	"github.com/custodia-labs/repopulse/internal/core/ports/driven"
	"github.com/custodia-labs/repopulse/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyOrganization      = "organization"
	KeyBranch            = "branch"
	KeySince             = "since"
	KeyPageSize          = "page_size"
	KeyCommitPageSize    = "commit_page_size"
	KeyHistoryPageSize   = "history_page_size"
	KeyInclusions        = "inclusions"
	KeyExclusions        = "exclusions"
	KeyDataDir           = "data_dir"
	KeyGraphQLURL        = "github.graphql_url"
	KeyRESTURL           = "github.rest_url"
	KeyToken             = "github.token"
	KeyRequestsPerSecond = "github.requests_per_second"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindList
	kindTime
)

var keyKinds = map[string]valueKind{
	KeyOrganization:      kindString,
	KeyBranch:            kindString,
	KeySince:             kindTime,
	KeyPageSize:          kindInt,
	KeyCommitPageSize:    kindInt,
	KeyHistoryPageSize:   kindInt,
	KeyInclusions:        kindList,
	KeyExclusions:        kindList,
	KeyDataDir:           kindString,
	KeyGraphQLURL:        kindString,
	KeyRESTURL:           kindString,
	KeyToken:             kindString,
	KeyRequestsPerSecond: kindFloat,
}

// EnvToken overrides the configured token when set.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvToken = "GITHUB_TOKEN"

// SettingsService reads scan settings from the config store.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// getenv is used for the token override; nil disables the override.
func NewSettingsService(configStore driven.ConfigStore, getenv func(string) string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      getenv,
	}
}

// Get returns the configured settings with defaults applied.
func (s *SettingsService) Get() (*domain.ScanSettings, error) {
	settings := domain.DefaultScanSettings()
	if s.configStore == nil {
		s.applyEnv(&settings)
		return &settings, nil
	}

	settings.Organization = s.getString(KeyOrganization, settings.Organization)
	settings.Branch = s.getString(KeyBranch, settings.Branch)
	settings.PageSize = s.getInt(KeyPageSize, settings.PageSize)
	settings.CommitPageSize = s.getInt(KeyCommitPageSize, settings.CommitPageSize)
	settings.HistoryPageSize = s.getInt(KeyHistoryPageSize, settings.HistoryPageSize)
	settings.DataDir = s.configStore.GetString(KeyDataDir)

	if v := s.configStore.GetStringSlice(KeyInclusions); v != nil {
		settings.Inclusions = v
	}
	if v := s.configStore.GetStringSlice(KeyExclusions); v != nil {
		settings.Exclusions = v
	}

	since, err := s.getTime(KeySince)
	if err != nil {
		return nil, err
	}
	if !since.IsZero() {
		settings.Since = since
	}

	settings.GitHub.GraphQLURL = s.getString(KeyGraphQLURL, settings.GitHub.GraphQLURL)
	settings.GitHub.RESTURL = s.getString(KeyRESTURL, settings.GitHub.RESTURL)
	settings.GitHub.Token = s.configStore.GetString(KeyToken)
	settings.GitHub.RequestsPerSecond = s.configStore.GetFloat(KeyRequestsPerSecond)

	s.applyEnv(&settings)
	return &settings, nil
}

// Validate checks settings are usable for a scan.
func (s *SettingsService) Validate(settings *domain.ScanSettings) error {
	if settings == nil {
		return fmt.Errorf("settings are required: %w", domain.ErrInvalidInput)
	}

	err := validation.ValidateStruct(settings,
		validation.Field(&settings.Organization, validation.Required),
		validation.Field(&settings.Branch, validation.Required),
		validation.Field(&settings.Since, validation.Required),
		validation.Field(&settings.PageSize, validation.Required, validation.Min(1), validation.Max(domain.MaxPageSize)),
		validation.Field(&settings.CommitPageSize, validation.Required, validation.Min(1), validation.Max(domain.MaxPageSize)),
		validation.Field(&settings.HistoryPageSize, validation.Required, validation.Min(1), validation.Max(domain.MaxPageSize)),
		validation.Field(&settings.Inclusions, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	gh := &settings.GitHub
	err = validation.ValidateStruct(gh,
		validation.Field(&gh.GraphQLURL, validation.Required, is.URL),
		validation.Field(&gh.RESTURL, validation.Required, is.URL),
		validation.Field(&gh.RequestsPerSecond, validation.Min(0.0)),
	)
	if err != nil {
		return fmt.Errorf("%w: github: %w", domain.ErrInvalidInput, err)
	}

	if gh.Token == "" {
		return fmt.Errorf("%w: set %s or %s", domain.ErrAuthRequired, KeyToken, EnvToken)
	}
	return nil
}

// Set parses raw according to the type of key and stores it.
// Lists are comma-separated and since must be RFC3339.
func (s *SettingsService) Set(key, raw string) error {
	if s.configStore == nil {
		return fmt.Errorf("config store not configured")
	}
	kind, ok := keyKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	raw = strings.TrimSpace(raw)
	var value any
	switch kind {
	case kindString:
		value = raw
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %w", domain.ErrInvalidInput, key, err)
		}
		value = n
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %w", domain.ErrInvalidInput, key, err)
		}
		value = f
	case kindList:
		value = splitList(raw)
	case kindTime:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("%w: %s must be RFC3339: %w", domain.ErrInvalidInput, key, err)
		}
		value = t.UTC().Format(time.RFC3339)
	}

	return s.configStore.Set(key, value)
}

// Keys returns every settable key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func (s *SettingsService) applyEnv(settings *domain.ScanSettings) {
	if s.getenv == nil {
		return
	}
	if token := s.getenv(EnvToken); token != "" {
		settings.GitHub.Token = token
	}
}

func (s *SettingsService) getString(key, def string) string {
	if v := strings.TrimSpace(s.configStore.GetString(key)); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return def
}

// getTime accepts either an RFC3339 string or a native TOML datetime.
func (s *SettingsService) getTime(key string) (time.Time, error) {
	val, ok := s.configStore.Get(key)
	if !ok {
		return time.Time{}, nil
	}

	switch v := val.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s must be RFC3339: %w", domain.ErrInvalidInput, key, err)
		}
		return t.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s has unsupported type %T", domain.ErrInvalidInput, key, val)
	}
}
