package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/metamemelord/Mockerino/config"
	"github.com/metamemelord/Mockerino/logging"
	"github.com/metamemelord/Mockerino/route"
	"github.com/metamemelord/Mockerino/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath string
	host       string
	port       int
	adminPort  int
	baseDir    string
	fileRoot   string
	logLevel   string
	logFormat  string
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the mockerino command tree. Without a subcommand it serves the spec tree.
func NewRootCommand() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "mockerino",
		Short: "A YAML based REST API mocking engine.",
		Long: `Mockerino serves mocked HTTP responses described by a tree of YAML spec files.
The path of a spec file below the base directory is the URL path of its routes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, f)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "Path to config file")
	pf.StringVar(&f.baseDir, "base-dir", "", "Directory holding the spec files")
	pf.StringVar(&f.fileRoot, "file-root", "", "Directory relative body files are resolved against")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")

	rootCmd.Flags().StringVar(&f.host, "host", "", "Interface to bind to")
	rootCmd.Flags().IntVarP(&f.port, "port", "p", 0, "Port of the mock app")
	rootCmd.Flags().IntVar(&f.adminPort, "admin-port", 0, "Port of the admin app, 0 disables it")

	rootCmd.AddCommand(newInitCommand(), newRoutesCommand(f), newVersionCommand())

	return rootCmd
}

// loadConfig layers the flags the user set over the config file and environment.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("host") {
		cfg.Host = f.host
	}
	if changed("port") {
		cfg.Port = f.port
	}
	if changed("admin-port") {
		cfg.SetAdminPort(f.adminPort)
	}
	if changed("base-dir") {
		cfg.BaseDir = f.baseDir
	}
	if changed("file-root") {
		cfg.FileRoot = f.fileRoot
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*logrus.Logger, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, w)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return logger, nil
}

func loadRoutes(cfg *config.Config, logger logrus.FieldLogger) (*route.LoadResult, error) {
	loader := &route.Loader{
		BaseDir:  cfg.BaseDir,
		FileRoot: cfg.FileRoot,
		Ignore:   cfg.Ignore,
		Logger:   logger,
	}

	return loader.Load()
}

func serve(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger.WithField("version", Version).Info("mockerino")

	if cfg.MaxProcs > 0 {
		runtime.GOMAXPROCS(cfg.MaxProcs)
		logger.WithField("maxProcs", cfg.MaxProcs).Debug("limited worker threads")
	}

	res, err := loadRoutes(cfg, logger)
	if err != nil {
		return err
	}

	s := server.New(res.Table,
		server.WithLogger(logger),
		server.WithHost(cfg.Host),
		server.WithPort(cfg.Port),
		server.WithAdminPort(cfg.AdminPort),
		server.WithAdminBasePath(cfg.AdminBasePath),
		server.WithDiagnostics(res.Diagnostics),
	)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	go func() {
		sig, ok := <-sigc
		if !ok {
			return
		}
		logger.WithField("signal", sig.String()).Info("shutting down")
		if err := s.Shutdown(); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	}()

	return s.Start()
}
