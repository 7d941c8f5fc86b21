// Command create-address-db builds a compact address database from Bitcoin Core block files.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/blockfile"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/progress"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/service"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/sink"
	"github.com/goodnatureofminers/addressdb/internal/metrics"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	exitOK          = 0
	exitFailed      = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(execute(os.Args))
}

func execute(args []string) int {
	opts := options{}
	if _, err := flags.ParseArgs(&opts, args[1:]); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	logger, err := newLogger(opts.Debug)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	// The pause only makes sense when the tool was started by double-click.
	pause := !opts.NoPause && len(args) == 1 && term.IsTerminal(int(os.Stdin.Fd()))
	defer func() {
		if pause {
			waitForEnter()
		}
	}()

	cfg, err := opts.buildConfig(hostPlatform())
	if err != nil {
		logger.Error("invalid arguments", zap.Error(err))
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reporter service.ProgressReporter = progress.ForTerminal(opts.NoProgress, logger)
	if opts.MetricsAddr != "" {
		status := newBuildStatus(cfg, reporter)
		reporter = status
		stopServer := startStatusServer(opts.MetricsAddr, newStatusHandler(status), logger)
		defer stopServer()
	}

	res, err := run(ctx, cfg, reporter, logger)
	return exitCode(res, err)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func run(ctx context.Context, cfg model.BuildConfig, reporter service.ProgressReporter, logger *zap.Logger) (service.Result, error) {
	logger = logger.With(zap.String("network", string(cfg.Network)))

	source, err := blockfile.NewDataDirSource(cfg.DataDir, cfg.BlocksDir)
	if err != nil {
		return service.Result{State: service.StateFailed, FailedIn: service.StateValidateEnvironment}, err
	}
	logger.Info("using block files",
		zap.String("dir", source.Dir()),
		zap.Bool("obfuscated", source.Obfuscated()),
	)

	var newSink service.SinkFactory
	if cfg.AddressTextPath != "" {
		// Opened only after the database, so a refused run leaves the text file alone.
		newSink = func() (service.AddressSink, error) {
			text, err := sink.NewText(cfg.AddressTextPath, cfg.Network, cfg.Mode == model.ModeUpdate, cfg.AddressFlushRate, logger)
			if err != nil {
				return nil, err
			}
			return text, nil
		}
	}

	builder, err := service.NewBuilder(
		cfg,
		source,
		blockfile.NewGuard(source, logger),
		service.StoreOpener{Metrics: metrics.NewStore(cfg.Network)},
		newSink,
		reporter,
		metrics.NewBuilder(cfg.Network),
		logger,
	)
	if err != nil {
		return service.Result{State: service.StateFailed, FailedIn: service.StateInit}, err
	}

	res, err := builder.Run(ctx)
	if err == nil {
		logger.Info("address database ready",
			zap.String("path", cfg.DBPath),
			zap.Uint64("addresses", res.Stats.Count),
			zap.String("load", fmt.Sprintf("%.2f%%", res.Stats.Load*100)),
			zap.Float64("false_positive_bound", res.Stats.FalsePositiveBound),
			zap.String("last_file", res.LastFile),
			zap.Int("partial_files", res.PartialFiles),
		)
	}
	return res, err
}

func exitCode(res service.Result, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case res.BeforeMutation():
		return exitUsage
	default:
		return exitFailed
	}
}

func waitForEnter() {
	fmt.Fprint(os.Stderr, "Press Enter to exit ...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
