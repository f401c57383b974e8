package main

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hyperjump/kue/internal/config"
	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/internal/server"
	"github.com/hyperjump/kue/internal/storage"
)

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"who do I know at stripe", "-limit", "5"},
			expected: []string{"-limit", "5", "who do I know at stripe"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-limit", "5", "who do I know at stripe"},
			expected: []string{"-limit", "5", "who do I know at stripe"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"stripe"},
			expected: []string{"stripe"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"p-4", "p-10", "-output", "json"},
			expected: []string{"-output", "json", "p-4", "p-10"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"stripe"}, "stripe"},
		{"multiple words", []string{"who", "at", "stripe"}, "who at stripe"},
		{"single quoted phrase", []string{"who at stripe"}, "who at stripe"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSearchQuery(tt.args)
			if got != tt.expected {
				t.Errorf("buildSearchQuery(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestConfigPathFromArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		defaultPath string
		want        string
	}{
		{"no config flag", []string{"-limit", "5", "query"}, "/default.yaml", "/default.yaml"},
		{"-config present", []string{"-config", "/custom.yaml", "query"}, "/default.yaml", "/custom.yaml"},
		{"--config present", []string{"--config", "/other.yaml"}, "/default.yaml", "/other.yaml"},
		{"config at end", []string{"query", "-config", "/end.yaml"}, "/default.yaml", "/end.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := configPathFromArgs(tt.args, tt.defaultPath)
			if got != tt.want {
				t.Errorf("configPathFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchLimitDefaultFromConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("search:\n  default_limit: 25\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := searchLimitDefaultFromConfig(configPath); got != 25 {
		t.Errorf("searchLimitDefaultFromConfig() = %d, want 25", got)
	}
	if got := searchLimitDefaultFromConfig(filepath.Join(dir, "nonexistent.yaml")); got != 10 {
		t.Errorf("searchLimitDefaultFromConfig(nonexistent) = %d, want 10", got)
	}
}

func TestParseSources(t *testing.T) {
	got := parseSources(" Email, calendar,,friends ")
	want := []models.Source{models.SourceEmail, models.SourceCalendar, models.SourceFriends}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSources() = %v, want %v", got, want)
	}
	if parseSources("") != nil {
		t.Error("empty --sources should select nothing")
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
storage:
  database_path: "./kue.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s (canon %s), want %s (canon %s)", resolved, resolvedCanon, configPath, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "./kue.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath != filepath.Join(dir, "kue.db") {
		t.Errorf("database path = %s", cfg.Storage.DatabasePath)
	}
}

func TestSearchWithAutoFuzzy(t *testing.T) {
	var calls []bool
	run := func(_ context.Context, q *models.SearchQuery) (*models.SearchResponse, error) {
		calls = append(calls, q.FuzzyEnabled)
		if q.FuzzyEnabled {
			return &models.SearchResponse{Query: q.Query, Total: 1, Fuzzy: true}, nil
		}
		return &models.SearchResponse{Query: q.Query}, nil
	}

	q := &models.SearchQuery{Query: "alx"}
	resp, err := searchWithAutoFuzzy(context.Background(), run, q)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.AutoFuzzy || resp.Total != 1 {
		t.Errorf("expected auto-fuzzy response, got %+v", resp)
	}
	if !reflect.DeepEqual(calls, []bool{false, true}) {
		t.Errorf("calls = %v", calls)
	}
	if q.FuzzyEnabled {
		t.Error("retry must not modify the caller's query")
	}

	// Fuzzy requested up front: no retry.
	calls = nil
	if _, err := searchWithAutoFuzzy(context.Background(), run, &models.SearchQuery{Query: "alx", FuzzyEnabled: true}); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 {
		t.Errorf("expected one call, got %v", calls)
	}

	failing := func(context.Context, *models.SearchQuery) (*models.SearchResponse, error) {
		return nil, errors.New("boom")
	}
	if _, err := searchWithAutoFuzzy(context.Background(), failing, q); err == nil {
		t.Error("expected error")
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "kue.db")
	return cfg
}

func TestLoadInitialDataset(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store uses fixture", func(t *testing.T) {
		cfg := testConfig(t)
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		ds, source, err := loadInitialDataset(ctx, cfg, store, zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		if source != "fixture" || len(ds.People()) != 31 {
			t.Errorf("source = %s, people = %d", source, len(ds.People()))
		}
	})

	t.Run("dataset file is persisted", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Dataset.Path = filepath.Join(t.TempDir(), "people.yaml")
		small := "people:\n  - id: a\n    name: Ada Lovelace\n"
		if err := os.WriteFile(cfg.Dataset.Path, []byte(small), 0600); err != nil {
			t.Fatal(err)
		}
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()

		ds, source, err := loadInitialDataset(ctx, cfg, store, zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		if source != cfg.Dataset.Path || len(ds.People()) != 1 {
			t.Errorf("source = %s, people = %d", source, len(ds.People()))
		}

		// Next start reads the store even if the file is gone.
		if err := os.Remove(cfg.Dataset.Path); err != nil {
			t.Fatal(err)
		}
		ds, source, err = loadInitialDataset(ctx, cfg, store, zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		if source != "database" || len(ds.People()) != 1 {
			t.Errorf("source = %s, people = %d", source, len(ds.People()))
		}
	})

	t.Run("store wins over dataset file with a warning", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Dataset.Path = filepath.Join(t.TempDir(), "people.yaml")
		if err := os.WriteFile(cfg.Dataset.Path, []byte("people:\n  - id: a\n    name: Ada Lovelace\n"), 0600); err != nil {
			t.Fatal(err)
		}
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		if err := store.ReplaceDataset(ctx, dataset.FixtureRecords()); err != nil {
			t.Fatal(err)
		}

		core, logs := observer.New(zapcore.WarnLevel)
		ds, source, err := loadInitialDataset(ctx, cfg, store, zap.New(core))
		if err != nil {
			t.Fatal(err)
		}
		if source != "database" || len(ds.People()) != 31 {
			t.Errorf("source = %s, people = %d", source, len(ds.People()))
		}
		warnings := logs.FilterField(zap.String("dataset_path", cfg.Dataset.Path)).All()
		if len(warnings) != 1 || warnings[0].Level != zapcore.WarnLevel {
			t.Errorf("expected one warning naming the ignored file, got %+v", logs.All())
		}
	})

	t.Run("store without dataset file logs nothing", func(t *testing.T) {
		cfg := testConfig(t)
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		if err := store.ReplaceDataset(ctx, dataset.FixtureRecords()); err != nil {
			t.Fatal(err)
		}
		core, logs := observer.New(zapcore.WarnLevel)
		if _, _, err := loadInitialDataset(ctx, cfg, store, zap.New(core)); err != nil {
			t.Fatal(err)
		}
		if logs.Len() != 0 {
			t.Errorf("unexpected warnings: %+v", logs.All())
		}
	})

	t.Run("malformed file fails", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Dataset.Path = filepath.Join(t.TempDir(), "people.yaml")
		if err := os.WriteFile(cfg.Dataset.Path, []byte("people: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		if _, _, err := loadInitialDataset(ctx, cfg, store, zap.NewNop()); err == nil {
			t.Error("expected error for malformed dataset")
		}
	})
}

func TestImportRecords(t *testing.T) {
	cfg := testConfig(t)
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	stats, err := importRecords(context.Background(), store, dataset.FixtureRecords())
	if err != nil {
		t.Fatal(err)
	}
	if want := dataset.Fixture().Stats(); stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestBuildSignalsReport(t *testing.T) {
	cfg := testConfig(t)
	c, err := initializeComponents(context.Background(), cfg, zap.NewNop(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ds := c.Holder.Current()

	report, err := buildSignalsReport(ds, c.Community, "p-2", false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Subject == "p-2" || len(report.Signals) != 2 || report.Path == nil {
		t.Errorf("unexpected report: %+v", report)
	}

	report, err = buildSignalsReport(ds, c.Community, "Stripe", true)
	if err != nil {
		t.Fatal(err)
	}
	if report.Subject != "Stripe" || report.Path != nil || len(report.Signals) == 0 {
		t.Errorf("unexpected company report: %+v", report)
	}

	if _, err := buildSignalsReport(ds, c.Community, "nobody", false); err == nil {
		t.Error("expected error for unknown person")
	}
}

func TestAPIClient(t *testing.T) {
	cfg := testConfig(t)
	c, err := initializeComponents(context.Background(), cfg, zap.NewNop(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ts := httptest.NewServer(server.NewServer(c.Services(), cfg, nil).Router())
	defer ts.Close()

	client := newAPIClient(ts.URL + "/")
	ctx := context.Background()

	resp, err := client.Search(ctx, &models.SearchQuery{Query: "who do I know at Stripe"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || resp.Context != "Stripe" {
		t.Errorf("search total = %d, context = %q", resp.Total, resp.Context)
	}

	paths, err := client.WarmPaths(ctx, "p-10")
	if err != nil {
		t.Fatal(err)
	}
	if paths.Total != 1 || paths.Paths[0].Connector.ID != "p-4" {
		t.Errorf("unexpected warm paths: %+v", paths)
	}
	if _, err := client.WarmPaths(ctx, "nobody"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 error, got %v", err)
	}

	draft, err := client.IntroDraft(ctx, &models.IntroDraftRequest{ConnectorID: "p-4", TargetID: "p-10"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(draft.Draft, "Rachel Green") {
		t.Errorf("draft = %q", draft.Draft)
	}

	status, err := client.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.Dataset.People != 31 || status.IntroRequests == nil || status.Stored == nil {
		t.Errorf("unexpected status: %+v", status)
	}
}

// writeTestConfig writes a config file pointing storage at a temp database.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "storage:\n  database_path: " + filepath.Join(dir, "kue.db") + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ReturnsExitCodes(t *testing.T) {
	configPath := writeTestConfig(t)
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, 1},
		{"unknown command", []string{"bogus"}, 1},
		{"version", []string{"version"}, 0},
		{"bad flag", []string{"search", "-nope", "stripe"}, 2},
		{"search without query", []string{"search", "-config", configPath}, 1},
		{"search bad output", []string{"search", "-config", configPath, "-output", "xml", "stripe"}, 1},
		{"search", []string{"search", "-config", configPath, "-output", "compact", "stripe"}, 0},
		{"paths unknown person", []string{"paths", "-config", configPath, "nobody"}, 1},
		{"paths", []string{"paths", "-config", configPath, "p-10"}, 0},
		{"intro unknown connector", []string{"intro", "-config", configPath, "nobody", "p-10"}, 1},
		{"signals unknown person", []string{"signals", "-config", configPath, "nobody"}, 1},
		{"import missing file", []string{"import", "-config", configPath, filepath.Join(t.TempDir(), "missing.yaml")}, 1},
		{"status bad output", []string{"status", "-config", configPath, "-output", "xml"}, 1},
		{"status", []string{"status", "-config", configPath, "-output", "json"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_FailedCommandReleasesStore(t *testing.T) {
	configPath := writeTestConfig(t)
	if got := run([]string{"paths", "-config", configPath, "nobody"}); got != 1 {
		t.Fatalf("paths = %d, want 1", got)
	}
	// The failed command ran its deferred cleanup; the same database imports cleanly.
	path := filepath.Join(t.TempDir(), "people.yaml")
	if err := dataset.WriteRecords(path, dataset.FixtureRecords()); err != nil {
		t.Fatal(err)
	}
	if got := run([]string{"import", "-config", configPath, path}); got != 0 {
		t.Errorf("import = %d, want 0", got)
	}
}
