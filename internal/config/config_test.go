package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "test.db"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %s", cfg.Server.Addr())
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database_path should be set")
	}
	if cfg.Storage.BleveIndexPath != "" {
		t.Errorf("bleve_index_path should stay empty (in-memory), got %s", cfg.Storage.BleveIndexPath)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  database_path: "./data/db/kue.db"
  bleve_index_path: "./data/indices/people"
dataset:
  path: "./dev/people.yaml"
  watch: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantDB := filepath.Join(dir, "data", "db", "kue.db")
	if cfg.Storage.DatabasePath != wantDB {
		t.Errorf("database_path = %s, want %s", cfg.Storage.DatabasePath, wantDB)
	}
	wantIndex := filepath.Join(dir, "data", "indices", "people")
	if cfg.Storage.BleveIndexPath != wantIndex {
		t.Errorf("bleve_index_path = %s, want %s", cfg.Storage.BleveIndexPath, wantIndex)
	}
	wantDataset := filepath.Join(dir, "dev", "people.yaml")
	if cfg.Dataset.Path != wantDataset {
		t.Errorf("dataset path = %s, want %s", cfg.Dataset.Path, wantDataset)
	}
	if !cfg.Dataset.Watch {
		t.Error("dataset watch should be true")
	}
}

func TestLoad_memoryDatabaseUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  database_path: \":memory:\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.DatabasePath != ":memory:" {
		t.Errorf("database_path = %s, want :memory:", cfg.Storage.DatabasePath)
	}
}

func TestLoad_searchWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
hubs:
  current_user_id: me
  cofounder_id: partner
  cofounder_name: Sam
search:
  max_limit: 25
  meeting_weight: 40
  ongoing_year: 2026
  recency_tiers:
    - max_days: 7
      bonus: 50
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hubs.CurrentUserID != "me" || cfg.Hubs.CofounderID != "partner" || cfg.Hubs.CofounderName != "Sam" {
		t.Errorf("unexpected hubs: %+v", cfg.Hubs)
	}
	if cfg.Search.MaxLimit != 25 {
		t.Errorf("max_limit = %d, want 25", cfg.Search.MaxLimit)
	}
	if cfg.Search.MeetingWeight != 40 {
		t.Errorf("meeting_weight = %d, want 40", cfg.Search.MeetingWeight)
	}
	if cfg.Search.EmailWeight != 5 {
		t.Errorf("email_weight should default to 5, got %d", cfg.Search.EmailWeight)
	}
	if cfg.Search.OngoingYear != 2026 {
		t.Errorf("ongoing_year = %d, want 2026", cfg.Search.OngoingYear)
	}
	if len(cfg.Search.RecencyTiers) != 1 || cfg.Search.RecencyTiers[0].Bonus != 50 {
		t.Errorf("recency_tiers = %+v", cfg.Search.RecencyTiers)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		t.Error("allowed origins should be set by default")
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 100 {
		t.Errorf("default limits: got %d/%d", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
	if cfg.Search.RecentEmailWeight != 15 || cfg.Search.SharedCompanyWeight != 25 {
		t.Errorf("default weights: got %+v", cfg.Search.RankingConfig)
	}
	if cfg.Search.RecentWindowDays != 90 || cfg.Search.OngoingYear != 2025 {
		t.Errorf("default window/year: got %d/%d", cfg.Search.RecentWindowDays, cfg.Search.OngoingYear)
	}
	if len(cfg.Search.RecencyTiers) != 3 {
		t.Errorf("default recency tiers: got %v", cfg.Search.RecencyTiers)
	}
	if cfg.Hubs.CurrentUserID != "user-1" || cfg.Hubs.CofounderID != "p-11" || cfg.Hubs.CofounderName != "Tom" {
		t.Errorf("default hubs: got %+v", cfg.Hubs)
	}
	if cfg.Community.HomeCompany != "Kue" {
		t.Errorf("default home company: got %s", cfg.Community.HomeCompany)
	}
	if cfg.Community.Circle.Name != "Founders Circle" || cfg.Community.Circle.MemberCount != 12 {
		t.Errorf("default circle: got %+v", cfg.Community.Circle)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := Default()
	cfg.Server.Port = 9090
	cfg.Storage.DatabasePath = "/tmp/db"
	cfg.Search.MeetingWeight = 33
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Search.MeetingWeight != 33 {
		t.Errorf("loaded meeting_weight: got %d", loaded.Search.MeetingWeight)
	}
}
