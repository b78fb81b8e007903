package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fentz26/dnsrun/internal/config"
	"github.com/fentz26/dnsrun/internal/connectors/localexec"
	"github.com/fentz26/dnsrun/internal/logging"
	"github.com/fentz26/dnsrun/internal/namelist"
	"github.com/fentz26/dnsrun/internal/restart"
	"github.com/fentz26/dnsrun/internal/rundir"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dnsrun",
	Short: "dnsrun - checkpoint and restart manager for DNS run directories",
	Long: `dnsrun keeps a DNS run directory consistent across restarts: it picks the
snapshot to resume from, rewrites the parameter file, truncates the diagnostic
logs to the resumption step, copies runs to fresh directories and prunes
snapshots that are no longer needed.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	configPath  string
	logLevel    string
	logFormat   string
	journalPath string
	jsonOutput  bool
)

// Resolved by setup before any subcommand runs.
var (
	cfg    *config.Config
	logger *slog.Logger
	engine *restart.Engine
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the dnsrun config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Operation journal database (overrides config; \"off\" disables)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(continueCmd)
	rootCmd.AddCommand(rerootCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(checkLogsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	logCfg := logging.FromEnv()
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	if logFormat != "" {
		logCfg.Format = logging.Format(logFormat)
	}
	logger = logging.New(logCfg)

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	switch journalPath {
	case "":
	case "off":
		cfg.Journal = ""
	default:
		cfg.Journal = journalPath
	}

	opts := restart.Options{
		PrimaryLog:    cfg.PrimaryLog,
		LogPattern:    cfg.LogPattern,
		ScriptPattern: cfg.ScriptPattern,
		ContinueDir:   cfg.ContinueDir,
		Schemas:       cfg.Schemas(),
	}
	engine = restart.New(rundir.OS{}, namelist.FileStore{Name: cfg.ParametersFile}, opts, logger)
	engine.SetSubmitter(localexec.New(cfg.SubmitCommand))
	return nil
}

// emit prints v as JSON when --json is set, otherwise the rendered text.
func emit(v interface{}, rendered string) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Print(rendered)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
