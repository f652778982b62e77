package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sozercan/techtalk-hub/internal/analyzer"
	"github.com/sozercan/techtalk-hub/internal/config"
	"github.com/sozercan/techtalk-hub/internal/jobs"
	"github.com/sozercan/techtalk-hub/internal/llm"
	"github.com/sozercan/techtalk-hub/internal/metrics"
	"github.com/sozercan/techtalk-hub/internal/server"
)

var (
	// Global flags
	configFile string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "techtalk",
	Short: "TechTalk Hub analysis service",
	Long: `techtalk asks a chat-completion model to analyze text for bias, privacy
risk and mood, and to rate how exposed a job is to automation.

Every analysis returns a complete result. When the model cannot be reached or
its reply cannot be read, a fixed default result is returned instead.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send one test message to the configured model",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Print the preset job catalog",
	Args:  cobra.NoArgs,
	RunE:  runJobs,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: ./techtalk.yaml if present)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for CLI analyses and the connection test")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(jobsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, installs the logger and builds the analyzer.
func setup() (*config.Config, *analyzer.Analyzer, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))

	llmProvider, err := llm.NewOpenAI(&cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	m, err := metrics.NewAnalysisMetrics()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	return cfg, analyzer.New(llmProvider, analyzer.WithMetrics(m)), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, a, err := setup()
	if err != nil {
		return err
	}

	catalog, err := jobs.Load()
	if err != nil {
		return err
	}

	srv := server.New(*cfg, a, catalog)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	return srv.Run()
}

func runPing(cmd *cobra.Command, args []string) error {
	_, a, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	res := a.TestConnection(ctx)
	if err := printJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("connection test failed: %s", res.Error)
	}
	return nil
}

func runJobs(cmd *cobra.Command, args []string) error {
	catalog, err := jobs.Load()
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), catalog)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
