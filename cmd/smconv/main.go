// Command smconv batch-converts strong-motion accelerometer recordings
// from national-network source formats (K-NET, SCSN V2, GeoNet V1A/V2A,
// P-Alert SAC, AFAD ASC) into JMA CSV or STERA-3D TXT, driven by a TOML
// configuration file.
//
// Usage:
//
//	smconv -i conversions.toml -o ./out -l info
//
// Exit codes are distinct per failure category so automation can branch:
// 1 argument validation, 2 configuration validation, 3 configuration
// parse, 4 extraction, 5 output/I-O.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/seismoworks/smconv/internal/adapter/http"
	"github.com/seismoworks/smconv/internal/config"
	"github.com/seismoworks/smconv/internal/extract"
	"github.com/seismoworks/smconv/internal/observability"
	"github.com/seismoworks/smconv/internal/pipeline"
)

const (
	exitUsage      = 1
	exitValidation = 2
	exitParse      = 3
	exitExtraction = 4
	exitIO         = 5
)

// exitError carries the process exit code alongside the cause.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type options struct {
	inputFilePath string
	outputDirPath string
	logLevel      string
	metricsAddr   string
	workers       int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitUsage)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "smconv",
		Short:         "Convert strong-motion recordings between seismic data formats",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inputFilePath, "input-file-path", "i", "", "path of the TOML file describing the conversions")
	cmd.Flags().StringVarP(&opts.outputDirPath, "output-dir-path", "o", "", "directory for converted files, created if absent")
	cmd.Flags().StringVarP(&opts.logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "optional address serving /metrics while the batch runs")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "concurrent extractions per conversion")
	cobra.CheckErr(cmd.MarkFlagRequired("input-file-path"))
	cobra.CheckErr(cmd.MarkFlagRequired("output-dir-path"))

	return cmd
}

func run(ctx context.Context, opts options) error {
	logger := observability.NewLogger(opts.logLevel)

	if errs := validateArgs(opts); len(errs) > 0 {
		for i, err := range errs {
			logger.Error("argument validation failed", "index", i+1, "error", err)
		}
		return &exitError{code: exitUsage, err: errs[0]}
	}

	// Create the output directory only after every argument checked out, so
	// a rejected invocation leaves the filesystem untouched.
	if err := os.MkdirAll(opts.outputDirPath, 0o755); err != nil {
		logger.Error("create output directory failed", "error", err)
		return &exitError{code: exitUsage, err: fmt.Errorf("create output directory %q: %w", opts.outputDirPath, err)}
	}

	cfg, err := config.Load(opts.inputFilePath)
	if err != nil {
		logger.Error("configuration parse failed", "error", err)
		return &exitError{code: exitParse, err: err}
	}

	metrics := observability.NewMetrics()
	p := pipeline.New(cfg, opts.outputDirPath, logger, metrics, opts.workers)
	logger.Info("batch starting", "run_id", p.RunID(), "conversions", len(cfg.Conversions))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.metricsAddr != "" {
		srv := httpadapter.NewServer(opts.metricsAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	sum, err := p.Run(ctx)
	if errors.Is(err, pipeline.ErrValidation) {
		return &exitError{code: exitValidation, err: err}
	}
	if err != nil {
		return &exitError{code: exitIO, err: err}
	}

	if code := failureExitCode(sum); code != 0 {
		return &exitError{code: code, err: fmt.Errorf("%d of %d recordings failed", len(sum.Results)-sum.Converted(), len(sum.Results))}
	}
	return nil
}

// validateArgs collects every CLI argument problem instead of stopping at
// the first, mirroring the configuration validator's behavior.
func validateArgs(opts options) []error {
	var errs []error

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(opts.inputFilePath), "."))
	if ext == "" {
		errs = append(errs, fmt.Errorf("input file %q has no extension", opts.inputFilePath))
	} else if ext != "toml" {
		errs = append(errs, fmt.Errorf("input file %q has extension %q, expected toml", opts.inputFilePath, ext))
	}

	if info, err := os.Stat(opts.inputFilePath); err != nil {
		errs = append(errs, fmt.Errorf("input file %q does not exist", opts.inputFilePath))
	} else if !info.Mode().IsRegular() {
		errs = append(errs, fmt.Errorf("input path %q is not a file", opts.inputFilePath))
	}

	if info, err := os.Stat(opts.outputDirPath); err == nil && !info.IsDir() {
		errs = append(errs, fmt.Errorf("output path %q exists and is not a directory", opts.outputDirPath))
	}

	return errs
}

// failureExitCode maps per-recording failures to the process exit code.
// Format-level extraction errors take precedence over environment I/O
// problems so automation sees "bad file" before "bad environment".
func failureExitCode(sum *pipeline.Summary) int {
	var sawIO bool
	for _, r := range sum.Results {
		if r.Err == nil {
			continue
		}
		var xerr *extract.Error
		if errors.As(r.Err, &xerr) && xerr.Kind != extract.IO {
			return exitExtraction
		}
		sawIO = true
	}
	if sawIO {
		return exitIO
	}
	return 0
}
