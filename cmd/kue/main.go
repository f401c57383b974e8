// Package main is the Kue CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kue/internal/cli"
	"github.com/hyperjump/kue/internal/community"
	"github.com/hyperjump/kue/internal/config"
	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/keyword"
	"github.com/hyperjump/kue/internal/metrics"
	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/internal/search"
	"github.com/hyperjump/kue/internal/server"
	"github.com/hyperjump/kue/internal/storage"
	"github.com/hyperjump/kue/internal/warmpath"
	"github.com/hyperjump/kue/internal/watcher"
	"github.com/hyperjump/kue/pkg/utils"
)

var version = "dev"

const defaultConfigPath = config.DefaultPath

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// A missing default config falls back to built-in defaults.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches a subcommand and returns the process exit code. Subcommands
// return instead of exiting so their deferred cleanup always runs.
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}
	command, rest := args[0], args[1:]
	switch command {
	case "server":
		return runServer(rest)
	case "search":
		return runSearch(rest)
	case "paths":
		return runPaths(rest)
	case "intro":
		return runIntro(rest)
	case "signals":
		return runSignals(rest)
	case "import":
		return runImport(rest)
	case "export":
		return runExport(rest)
	case "status":
		return runStatus(rest)
	case "version", "--version", "-v":
		fmt.Printf("kue version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		return 1
	}
	return 0
}

// parseFlags parses args into fs. When ok is false the command stops with code.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

// fail prints a message to stderr and returns exit code 1.
func fail(format string, a ...interface{}) int {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	return 1
}

func runServer(args []string) int {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (requests, reloads, index rebuilds)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		return fail("Failed to load config: %v", err)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return fail("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := initializeComponents(ctx, cfg, logger, true)
	if err != nil {
		logger.Error("Failed to initialize components", zap.Error(err))
		return 1
	}
	defer components.Close()
	components.Metrics.ObserveReload(len(components.Holder.Current().People()), nil)

	if cfg.Dataset.Watch && cfg.Dataset.Path != "" {
		w := watcher.NewDatasetWatcher(cfg.Dataset.Path, components.Holder, logger,
			persistReload(components, logger))
		if err := w.Start(ctx); err != nil {
			logger.Error("Failed to start dataset watcher", zap.Error(err))
			return 1
		}
		defer w.Stop()
	}

	srv := server.NewServer(components.Services(), cfg, logger)
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	code := 0
	select {
	case <-sigChan:
	case err := <-serveErr:
		logger.Error("Server failed", zap.Error(err))
		code = 1
	}

	logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	return code
}

// persistReload records each reload attempt and writes successful reloads to the store,
// so a restart serves the latest file contents.
func persistReload(c *Components, logger *zap.Logger) watcher.ReloadFunc {
	return func(path string, err error) {
		ds := c.Holder.Current()
		c.Metrics.ObserveReload(len(ds.People()), err)
		if err != nil {
			return
		}
		if err := c.Storage.ReplaceDataset(context.Background(), ds.Records()); err != nil {
			logger.Warn("failed to persist reloaded dataset", zap.String("path", path), zap.Error(err))
		}
	}
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: kue search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
  • Name a company ("who do I know at Stripe") to see everyone connected to it.
  • Intent words (anyone, everyone, who, all) list your whole network.
  • An empty exact search is retried once with typo tolerance.
  • Use --sources email,calendar,friends to keep only those connectors.

Examples:
  kue search who do I know at Stripe
  kue search --limit 5 anyone
  kue search --fuzzy alx chen
  kue search --output json --sources calendar investors
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// configPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func configPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultPath
}

// searchLimitDefaultFromConfig returns the configured default result limit, or 10.
func searchLimitDefaultFromConfig(path string) int {
	cfg, _, err := loadConfig(path)
	if err != nil || cfg == nil {
		return 10
	}
	return cfg.Search.DefaultLimit
}

// argsReorder moves any flags (and their values) that appear after the positional
// arguments to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// parseSources splits a comma separated --sources value.
func parseSources(s string) []models.Source {
	var sources []models.Source
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			sources = append(sources, models.Source(part))
		}
	}
	return sources
}

// searcher runs one search, over HTTP or in process.
type searcher func(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error)

// searchWithAutoFuzzy runs q and, when nothing matched and fuzzy was off,
// retries once with fuzzy matching.
func searchWithAutoFuzzy(ctx context.Context, do searcher, q *models.SearchQuery) (*models.SearchResponse, error) {
	response, err := do(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.FuzzyEnabled || response.Total > 0 {
		return response, nil
	}
	retry := *q
	retry.FuzzyEnabled = true
	fuzzyResponse, fuzzyErr := do(ctx, &retry)
	if fuzzyErr == nil && fuzzyResponse.Total > 0 {
		fuzzyResponse.AutoFuzzy = true
		return fuzzyResponse, nil
	}
	return response, nil
}

func runSearch(args []string) int {
	searchArgs := argsReorder(args)
	configPath := configPathFromArgs(searchArgs, defaultConfigPath)

	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = run the search in process)")
	limit := fs.Int("limit", searchLimitDefaultFromConfig(configPath), "number of results")
	fuzzyEnabled := fs.Bool("fuzzy", false, "enable fuzzy matching for typo tolerance")
	sources := fs.String("sources", "", "comma separated connectors to keep: email, calendar, friends")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	if code, ok := parseFlags(fs, searchArgs); !ok {
		return code
	}

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		return 1
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		return fail("%v", err)
	}

	searchQuery := &models.SearchQuery{
		Query:        queryStr,
		Limit:        *limit,
		Sources:      parseSources(*sources),
		FuzzyEnabled: *fuzzyEnabled,
	}

	ctx := context.Background()
	var searchFn searcher
	if *serverURL != "" {
		client := newAPIClient(*serverURL)
		searchFn = client.Search
	} else {
		components, err := localComponents(ctx, *configPathFlag)
		if err != nil {
			return fail("%v", err)
		}
		defer components.Close()
		searchFn = components.Engine.Search
	}

	response, err := searchWithAutoFuzzy(ctx, searchFn, searchQuery)
	if err != nil {
		return fail("Search failed: %v", err)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		return fail("Output failed: %v", err)
	}
	return 0
}

func runPaths(args []string) int {
	fs := flag.NewFlagSet("paths", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = run in process)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	if code, ok := parseFlags(fs, argsReorder(args)); !ok {
		return code
	}

	if fs.NArg() < 1 {
		fmt.Println("Usage: kue paths [flags] <person-id>")
		return 1
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		return fail("%v", err)
	}
	targetID := fs.Arg(0)

	var response *models.WarmPathResponse
	if *serverURL != "" {
		response, err = newAPIClient(*serverURL).WarmPaths(context.Background(), targetID)
		if err != nil {
			return fail("Warm paths failed: %v", err)
		}
	} else {
		components, err := localComponents(context.Background(), *configPath)
		if err != nil {
			return fail("%v", err)
		}
		defer components.Close()
		response = components.Finder.Paths(targetID)
		if response.Target == nil {
			return fail("Unknown person: %s", targetID)
		}
	}
	if err := cli.WriteWarmPaths(os.Stdout, response, format); err != nil {
		return fail("Output failed: %v", err)
	}
	return 0
}

func runIntro(args []string) int {
	fs := flag.NewFlagSet("intro", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = run in process)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	if code, ok := parseFlags(fs, argsReorder(args)); !ok {
		return code
	}

	if fs.NArg() < 2 {
		fmt.Println("Usage: kue intro [flags] <connector-id> <target-id>")
		return 1
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		return fail("%v", err)
	}
	req := &models.IntroDraftRequest{ConnectorID: fs.Arg(0), TargetID: fs.Arg(1)}

	var response *models.IntroDraftResponse
	if *serverURL != "" {
		response, err = newAPIClient(*serverURL).IntroDraft(context.Background(), req)
	} else {
		components, cerr := localComponents(context.Background(), *configPath)
		if cerr != nil {
			return fail("%v", cerr)
		}
		defer components.Close()
		response, err = components.Finder.Draft(req)
	}
	if err != nil {
		return fail("Intro draft failed: %v", err)
	}
	if err := cli.WriteIntroDraft(os.Stdout, response, format); err != nil {
		return fail("Output failed: %v", err)
	}
	return 0
}

func runSignals(args []string) int {
	fs := flag.NewFlagSet("signals", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	company := fs.Bool("company", false, "treat the argument as a company name")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	if code, ok := parseFlags(fs, argsReorder(args)); !ok {
		return code
	}

	subject := buildSearchQuery(fs.Args())
	if subject == "" {
		fmt.Println("Usage: kue signals [flags] <person-id>")
		fmt.Println("       kue signals --company [flags] <company-name>")
		return 1
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		return fail("%v", err)
	}

	components, err := localComponents(context.Background(), *configPath)
	if err != nil {
		return fail("%v", err)
	}
	defer components.Close()

	report, err := buildSignalsReport(components.Holder.Current(), components.Community, subject, *company)
	if err != nil {
		return fail("%v", err)
	}
	if err := cli.WriteSignals(os.Stdout, report, format); err != nil {
		return fail("Output failed: %v", err)
	}
	return 0
}

// buildSignalsReport collects the signals for a person id, or a company name when company is set.
func buildSignalsReport(ds *dataset.Dataset, svc *community.Service, subject string, company bool) (*cli.SignalsReport, error) {
	if company {
		return &cli.SignalsReport{Subject: subject, Signals: svc.CompanySignals(subject)}, nil
	}
	person, ok := ds.Person(subject)
	if !ok {
		return nil, fmt.Errorf("unknown person: %s", subject)
	}
	report := &cli.SignalsReport{Subject: person.Name, Signals: svc.PersonSignals(subject)}
	if path, ok := svc.Path(subject); ok {
		report.Path = &path
	}
	return report, nil
}

func runImport(args []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if fs.NArg() < 1 {
		fmt.Println("Usage: kue import [flags] <dataset.yaml|.json|.xlsx>")
		return 1
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return fail("Failed to load config: %v", err)
	}
	records, err := dataset.ReadRecords(path)
	if err != nil {
		return fail("Failed to read dataset: %v", err)
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fail("Failed to open storage: %v", err)
	}
	defer store.Close()

	stats, err := importRecords(context.Background(), store, records)
	if err != nil {
		return fail("Import failed: %v", err)
	}
	fmt.Printf("Imported %d people, %d companies, %d emails, %d meetings, %d work history rows from %s\n",
		stats.People, stats.Companies, stats.Emails, stats.Meetings, stats.WorkHistory, path)
	return 0
}

// importRecords replaces the stored dataset with records and returns the stored counts.
func importRecords(ctx context.Context, store storage.Storage, records *models.Records) (models.DatasetStats, error) {
	if err := store.ReplaceDataset(ctx, records); err != nil {
		return models.DatasetStats{}, err
	}
	return store.Counts(ctx)
}

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if fs.NArg() < 1 {
		fmt.Println("Usage: kue export [flags] <dataset.yaml|.json|.xlsx>")
		return 1
	}
	path := fs.Arg(0)

	components, err := localComponents(context.Background(), *configPath)
	if err != nil {
		return fail("%v", err)
	}
	defer components.Close()
	if err := dataset.WriteRecords(path, components.Holder.Current().Records()); err != nil {
		return fail("Export failed: %v", err)
	}
	fmt.Printf("Exported dataset to %s\n", path)
	return 0
}

// statusResponse is the shape of the GET /api/v1/status response.
type statusResponse struct {
	Dataset        models.DatasetStats  `json:"dataset"`
	DatasetVersion uint64               `json:"dataset_version"`
	Stored         *models.DatasetStats `json:"stored,omitempty"`
	IntroRequests  *int64               `json:"intro_requests,omitempty"`
	DiskUsageBytes *int64               `json:"disk_usage_bytes,omitempty"`
	DiskUsage      []storage.PathUsage  `json:"disk_usage,omitempty"`
	Config         map[string]interface{}       `json:"config,omitempty"`
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = read storage directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if *outputFormat != "text" && *outputFormat != "json" {
		return fail("Unknown output format %q; use text or json", *outputFormat)
	}

	ctx := context.Background()
	var status *statusResponse
	if *serverURL != "" {
		var err error
		status, err = newAPIClient(*serverURL).Status(ctx)
		if err != nil {
			return fail("Status failed: %v", err)
		}
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			return fail("Failed to load config: %v", err)
		}
		components, err := newComponents(ctx, cfg)
		if err != nil {
			return fail("%v", err)
		}
		defer components.Close()
		status, err = localStatus(ctx, components, cfg)
		if err != nil {
			return fail("Status failed: %v", err)
		}
	}

	if *outputFormat == "json" {
		if err := cli.WriteJSON(os.Stdout, status); err != nil {
			return fail("Output failed: %v", err)
		}
		return 0
	}
	writeStatusText(status)
	return 0
}

func localStatus(ctx context.Context, c *Components, cfg *config.Config) (*statusResponse, error) {
	stored, err := c.Storage.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stored records: %w", err)
	}
	intros, err := c.Storage.CountIntroRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("count intro requests: %w", err)
	}
	status := &statusResponse{
		Dataset:        c.Holder.Current().Stats(),
		DatasetVersion: c.Holder.Version(),
		Stored:         &stored,
		IntroRequests:  &intros,
		Config: map[string]interface{}{
			"current_user_id":  cfg.Hubs.CurrentUserID,
			"dataset_path":     cfg.Dataset.Path,
			"database_path":    cfg.Storage.DatabasePath,
			"bleve_index_path": cfg.Storage.BleveIndexPath,
		},
	}
	usage, total, err := storage.DiskUsage(map[string]string{
		"database":    cfg.Storage.DatabasePath,
		"bleve_index": cfg.Storage.BleveIndexPath,
		"dataset":     cfg.Dataset.Path,
	})
	if err == nil {
		status.DiskUsageBytes = &total
		status.DiskUsage = usage
	}
	return status, nil
}

func writeStatusText(status *statusResponse) {
	d := status.Dataset
	fmt.Printf("people:             %d   # people in the live dataset\n", d.People)
	fmt.Printf("companies:          %d\n", d.Companies)
	fmt.Printf("emails:             %d\n", d.Emails)
	fmt.Printf("meetings:           %d\n", d.Meetings)
	fmt.Printf("work_history:       %d\n", d.WorkHistory)
	fmt.Printf("dataset_version:    %d   # increments on every reload\n", status.DatasetVersion)
	if status.Stored != nil {
		fmt.Printf("stored_people:      %d   # people persisted in SQLite\n", status.Stored.People)
	}
	if status.IntroRequests != nil {
		fmt.Printf("intro_requests:     %d   # community intros logged\n", *status.IntroRequests)
	}
	if status.DiskUsageBytes != nil {
		fmt.Printf("disk_usage_bytes:   %d   # storage + index + dataset on disk\n", *status.DiskUsageBytes)
	}
	if len(status.Config) > 0 {
		fmt.Println()
		fmt.Println("# configuration")
		for _, key := range []string{"current_user_id", "dataset_path", "database_path", "bleve_index_path"} {
			if v, ok := status.Config[key]; ok && v != "" {
				fmt.Printf("%-19s %v\n", key+":", v)
			}
		}
	}
}

// localComponents loads config and builds in-process components for one-shot commands.
func localComponents(ctx context.Context, configPath string) (*Components, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newComponents(ctx, cfg)
}

func newComponents(ctx context.Context, cfg *config.Config) (*Components, error) {
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	// One-shot commands keep the people index in memory so they never
	// contend with a running server for the on-disk index lock.
	components, err := initializeComponents(ctx, cfg, logger, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return components, nil
}

// Components holds initialized services.
type Components struct {
	Storage   storage.Storage
	People    *keyword.BleveIndex
	Holder    *dataset.Holder
	Engine    *search.Engine
	Finder    *warmpath.Finder
	Community *community.Service
	Metrics   *metrics.Collector
}

// Services returns the components the HTTP API needs.
func (c *Components) Services() server.Services {
	return server.Services{
		Holder:    c.Holder,
		Engine:    c.Engine,
		Finder:    c.Finder,
		Community: c.Community,
		Store:     c.Storage,
		Metrics:   c.Metrics,
	}
}

func (c *Components) Close() {
	if c.People != nil {
		_ = c.People.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

// loadInitialDataset picks the first dataset source that has data: the store,
// then the configured dataset file, then the built-in fixture. A file load is
// persisted to the store.
func loadInitialDataset(ctx context.Context, cfg *config.Config, store storage.Storage, logger *zap.Logger) (*dataset.Dataset, string, error) {
	records, err := store.LoadRecords(ctx)
	if err == nil {
		if cfg.Dataset.Path != "" {
			logger.Warn("stored dataset takes precedence; dataset.path is ignored until the next reload or kue import",
				zap.String("dataset_path", cfg.Dataset.Path),
				zap.String("database_path", cfg.Storage.DatabasePath))
		}
		return dataset.New(records), "database", nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to load stored dataset: %w", err)
	}
	if cfg.Dataset.Path != "" {
		records, err := dataset.ReadRecords(cfg.Dataset.Path)
		if err != nil {
			return nil, "", err
		}
		if err := store.ReplaceDataset(ctx, records); err != nil {
			return nil, "", fmt.Errorf("failed to persist dataset: %w", err)
		}
		return dataset.New(records), cfg.Dataset.Path, nil
	}
	return dataset.Fixture(), "fixture", nil
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger, persistentIndex bool) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	c := &Components{Storage: store, Metrics: metrics.NewCollector()}

	ds, source, err := loadInitialDataset(ctx, cfg, store, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Holder = dataset.NewHolder(ds)
	stats := ds.Stats()
	logger.Info("dataset loaded",
		zap.String("source", source),
		zap.Int("people", stats.People),
		zap.Int("emails", stats.Emails),
		zap.Int("meetings", stats.Meetings))

	indexPath := ""
	if persistentIndex {
		indexPath = cfg.Storage.BleveIndexPath
	}
	c.People, err = keyword.NewBleveIndex(indexPath)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize people index: %w", err)
	}

	c.Engine = search.NewEngine(c.Holder, cfg.Hubs, &cfg.Search,
		search.WithLogger(logger),
		search.WithPeopleIndex(c.People, keyword.NewSpellChecker(c.People)),
	)
	if err := c.Engine.Reindex(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.Finder = warmpath.NewFinder(c.Holder, cfg.Hubs, nil, logger)
	c.Community = community.NewService(c.Holder, cfg.Community.HomeCompany, cfg.Community.Circle,
		community.WithRecorder(store),
		community.WithLogger(logger),
	)
	return c, nil
}

func printUsage() {
	fmt.Println(`kue - Relationship search: who you know, and how to reach who you don't

Usage:
  kue server [flags]                        Start the HTTP server
  kue search [flags] <query>                Search your connections
  kue paths [flags] <person-id>             Show warm intro paths to a person
  kue intro [flags] <connector> <target>    Draft an intro request
  kue signals [flags] <person-id|company>   Show community signals
  kue import [flags] <file>                 Replace the stored dataset from a YAML, JSON or XLSX file
  kue export [flags] <file>                 Write the current dataset to a YAML, JSON or XLSX file
  kue status [flags]                        Show dataset/storage status
  kue version                               Show version
  kue help                                  Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kue/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path (for in-process mode; also used for the default limit)
  --server string    Server URL, e.g. http://localhost:8080. Empty (default) runs in process.
  --limit int        Number of results (default from config, or 10)
  --fuzzy            Enable fuzzy matching for typo tolerance (default: false)
  --sources string   Comma separated connectors to keep: email, calendar, friends
  --output string    Output format: text, compact or json (default: text)

Paths / Intro Flags:
  --config, --server, --output as for search

Signals Flags:
  --company          Treat the argument as a company name
  --output string    Output format: text, compact or json (default: text)

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL. Empty (default) reads storage directly.
  --output string    Output format: text or json (default: text)

Examples:
  kue server
  kue search who do I know at Stripe
  kue search --output json --limit 5 anyone
  kue paths p-10
  kue intro p-4 p-10
  kue signals p-2
  kue signals --company Stripe
  kue import ~/relationships.xlsx
  kue status --output json`)
}
