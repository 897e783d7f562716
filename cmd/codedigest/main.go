package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/formatter"
	"github.com/KnockOutEZ/codedigest/internal/git"
	"github.com/KnockOutEZ/codedigest/internal/logging"
	"github.com/KnockOutEZ/codedigest/internal/models"
	"github.com/KnockOutEZ/codedigest/internal/processor"
	"github.com/KnockOutEZ/codedigest/internal/retry"
	"github.com/KnockOutEZ/codedigest/internal/security"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "codedigest [directory]",
		Short:         "Pack a directory into a single digest",
		Long:          `codedigest walks a directory, selects files through include, exclude and ignore rules, and renders their content as text, markdown, JSON, CSV, HTML, XML or a tree.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}
	f.register(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	startTime := time.Now()

	if f.initConfig {
		return initializeConfig(f.configPath)
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := f.apply(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("runID", uuid.NewString()))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	remote := f.remoteURL
	if remote == "" && git.IsRemoteURL(dir) {
		remote = dir
	}
	if remote != "" {
		repo, err := git.Clone(ctx, git.CloneOptions{
			URL:    remote,
			Branch: f.remoteBranch,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		defer repo.Close()
		dir = repo.Path()
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", processor.ErrInvalidDirectory, dir)
	}

	var opts []processor.Option
	var bar *progressbar.ProgressBar
	if f.progress && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = newProgressBar()
		opts = append(opts, processor.WithProgress(bar))
	}
	proc := processor.New(cfg, logger, opts...)

	records, err := retry.Do(ctx, retry.Options{
		Timeout: cfg.TimeoutDuration(),
		Retries: cfg.RetryCount,
		Delay:   cfg.RetryDelayDuration(),
		Logger:  logger,
	}, func(ctx context.Context) ([]models.FileRecord, error) {
		records, err := proc.ProcessDirectory(ctx, dir)
		if errors.Is(err, processor.ErrInvalidDirectory) {
			return nil, retry.Permanent(err)
		}
		return records, err
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if cfg.SecurityCheck {
		runSecurityCheck(ctx, records, cfg, logger)
	}

	output, err := formatter.Render(records, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if err := writeOutput(output, cfg, logger); err != nil {
		return err
	}

	logger.Info("Digest complete",
		zap.Int("files", len(records)),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(config.DefaultFileName)
}

func initializeConfig(path string) error {
	if path == "" {
		path = config.DefaultFileName
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func runSecurityCheck(ctx context.Context, records []models.FileRecord, cfg *config.Config, logger *zap.Logger) {
	issues, err := security.New(cfg.MaxParallelProcesses).Check(ctx, records)
	if err != nil {
		logger.Warn("Security check failed", zap.Error(err))
		return
	}
	if len(issues) == 0 {
		logger.Info("Security check found no issues")
		return
	}
	logger.Warn("Security check found potential secrets", zap.Int("issues", len(issues)))
	fmt.Fprint(os.Stderr, security.Report(issues))
}

func writeOutput(output string, cfg *config.Config, logger *zap.Logger) error {
	data, err := formatter.Encode(output, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.OutputFile == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(cfg.OutputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("Wrote digest", zap.String("file", cfg.OutputFile), zap.Int("bytes", len(data)))
	}

	if cfg.CopyToClipboard {
		if err := utils.CopyToClipboard(output); err != nil {
			logger.Warn("Could not copy output to clipboard", zap.Error(err))
		}
	}
	return nil
}
