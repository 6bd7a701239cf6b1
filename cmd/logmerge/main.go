package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sliink/logmerge/internal/api"
	"github.com/sliink/logmerge/internal/config"
	"github.com/sliink/logmerge/internal/core"
	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin/inputs"
	"github.com/sliink/logmerge/internal/plugin/outputs"
	"github.com/spf13/cobra"
)

const msgWrongFileCount = "please supply exactly two log files"

type options struct {
	configFile  string
	verbose     bool
	workflow    string
	connections string
	startTime   string
	endTime     string
	toolID      string
	levels      []string
	format      string
	limit       int
	all         bool
	colorize    bool
	apiHost     string
	apiPort     int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "logmerge",
		Short:         "Merge two log files chronologically and filter the result",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Common flags
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to configuration file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline events to stderr")

	rootCmd.AddCommand(newMergeCmd(opts), newServeCmd(opts))
	return rootCmd
}

func newMergeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [WORKFLOW CONNECTIONS]",
		Short: "Merge a workflow log and a connections log",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.workflow, "workflow", "", "Workflow log file")
	flags.StringVar(&opts.connections, "connections", "", "Connections log file")
	flags.StringVar(&opts.startTime, "start", "", "Start of the time-of-day window, HH:MM:SS")
	flags.StringVar(&opts.endTime, "end", "", "End of the time-of-day window, HH:MM:SS")
	flags.StringVar(&opts.toolID, "tool-id", "", "Keep entries whose message contains this tool ID")
	flags.StringSliceVar(&opts.levels, "level", nil, "Log level tags to keep, e.g. ERR,INF,DBG (repeatable)")
	flags.StringVarP(&opts.format, "format", "f", outputs.FormatTable, "Output format: "+strings.Join(outputs.Formats(), ", "))
	flags.IntVarP(&opts.limit, "limit", "n", model.DefaultPreviewRows, "Number of rows to show, at least 1 (use --all for every row)")
	flags.BoolVar(&opts.all, "all", false, "Show every row instead of a preview")
	flags.BoolVar(&opts.colorize, "color", false, "Colorize table output")

	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	// API server flags
	cmd.Flags().StringVar(&opts.apiHost, "host", "localhost", "API server host")
	cmd.Flags().IntVar(&opts.apiPort, "port", 8080, "API server port")

	return cmd
}

// loadConfig reads the config file and lets explicitly set flags win
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.DefaultLevels = opts.levels
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("limit") {
		if opts.limit < 1 {
			return config.Config{}, errors.New("--limit must be at least 1, use --all to show every row")
		}
		cfg.PreviewRows = opts.limit
	}
	if flags.Changed("color") {
		cfg.Color = opts.colorize
	}
	if flags.Changed("host") {
		cfg.APIHost = opts.apiHost
	}
	if flags.Changed("port") {
		cfg.APIPort = opts.apiPort
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logPaths resolves the two inputs from flags or positional arguments
func logPaths(opts *options, args []string) ([]string, error) {
	if opts.workflow != "" || opts.connections != "" {
		if opts.workflow == "" || opts.connections == "" || len(args) > 0 {
			return nil, errors.New(msgWrongFileCount)
		}
		return []string{opts.workflow, opts.connections}, nil
	}
	if len(args) != len(model.Sources) {
		return nil, errors.New(msgWrongFileCount)
	}
	return args, nil
}

func runMerge(cmd *cobra.Command, opts *options, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	paths, err := logPaths(opts, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, opts.verbose)

	renderer, err := outputs.New(cfg.Format, outputs.Options{Colorize: cfg.Color, Indent: true})
	if err != nil {
		return err
	}

	sources := make([]model.SourceFile, 0, len(paths))
	for i, path := range paths {
		file, err := inputs.OpenFile(path)
		if err != nil {
			return err
		}
		defer file.Close()
		sources = append(sources, model.SourceFile{Source: model.Sources[i], Reader: file})
		logger.Debug("opened log file", "source", model.Sources[i], "path", path)
	}

	engine := core.NewEngine()
	engine.GetEventBus().LogTo(logger, "cli_logger")

	table, err := engine.Merge(sources, model.Query{
		StartTime: opts.startTime,
		EndTime:   opts.endTime,
		ToolID:    opts.toolID,
		LogLevels: cfg.DefaultLevels,
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidTimeFormat) {
			return err
		}
		return fmt.Errorf("merge: %w", err)
	}

	if table.Empty() {
		fmt.Fprintln(stderr, "No matching log entries found.")
		return nil
	}

	fmt.Fprintf(stderr, "Merged and filtered %d log entries.\n", table.Len())

	limit := cfg.PreviewRows
	if opts.all {
		limit = 0
	}
	return renderer.Render(stdout, table.Head(limit))
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	apiServer := api.NewAPI(cfg, logger)

	errs := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Starting API server at %s:%d\n", cfg.APIHost, cfg.APIPort)
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errs:
		if ok {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Shutdown complete")
	return nil
}
