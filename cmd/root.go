package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/abhisek/conjugo/internal/config"
	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/logging"
	"github.com/abhisek/conjugo/internal/mastery"
	"github.com/abhisek/conjugo/internal/session"
	"github.com/abhisek/conjugo/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conjugo",
	Short: "French verb conjugation drills",
	Long: `conjugo drills French verb conjugations in the terminal.

Pick tenses, verb groups and tiers, then fill in the missing verb of each
sentence. Forms you keep getting right are pre-filled; a miss resets them.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupRuntime,
	PersistentPostRunE: teardownRuntime,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// rt holds what PersistentPreRunE resolved for the running command.
var rt struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides CONJUGO_DB env var)")
	pf.String("dataset", "", "Path to a dataset JSON file (default: built-in sample)")
	pf.String("config", "", "Path to a YAML config file")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", `Log file path, "-" for stderr`)
	pf.Bool("ephemeral", false, "Keep mastery scores in memory only")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupRuntime loads configuration, applies flag overrides and installs the
// logger.
func setupRuntime(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: configFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if f := cmd.Flags().Lookup("dataset"); f != nil && f.Changed {
		cfg.DatasetPath = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-file"); f != nil && f.Changed {
		cfg.LogFile = f.Value.String()
	}

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = logging.DefaultLogPath(); err != nil {
			return err
		}
	}
	logger, closeLog, err := logging.Setup(logPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	rt.cfg = cfg
	rt.logger = logger.With("command", cmd.Name())
	rt.closeLog = closeLog
	return nil
}

func teardownRuntime(cmd *cobra.Command, args []string) error {
	if rt.closeLog == nil {
		return nil
	}
	return rt.closeLog()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured db_path (CONJUGO_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if rt.cfg != nil && rt.cfg.DBPath != "" {
		return rt.cfg.DBPath, store.EnsureDir(rt.cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openMasteryStore opens the SQLite store, or an in-memory one with
// --ephemeral. The returned close function is always non-nil.
func openMasteryStore(cmd *cobra.Command) (mastery.Catalog, func() error, error) {
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		return mastery.NewMemoryStore(), func() error { return nil }, nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(logger()))
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, st.Close, nil
}

// loadDataset loads the configured dataset and logs questions that cannot
// be resolved against its tables.
func loadDataset() (*dataset.Dataset, error) {
	path := ""
	if rt.cfg != nil {
		path = rt.cfg.DatasetPath
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	for _, p := range ds.Check() {
		logger().Warn("unresolved question", "index", p.Index, "error", p.Err)
	}
	logger().Debug("dataset loaded", "path", path, "questions", len(ds.Questions), "tiers", len(ds.Tiers))
	return ds, nil
}

func newController(ds *dataset.Dataset, st mastery.Store) *session.Controller {
	opts := []session.Option{session.WithLogger(logger())}
	if rt.cfg != nil {
		opts = append(opts, session.WithLocale(rt.cfg.Language()))
	}
	return session.New(ds, st, opts...)
}

func logger() *slog.Logger {
	if rt.logger == nil {
		return slog.Default()
	}
	return rt.logger
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything but o/oui/y/yes is a no.
func confirm(in *bufio.Scanner, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [o/N] ", question)
	if !in.Scan() {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}
