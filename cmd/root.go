package cmd

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amethyst-mc/amethyst/internal/app/amethyst"
	"github.com/amethyst-mc/amethyst/internal/pkg/config"
)

var (
	files   embed.FS
	version string

	configPath  = "config.yml"
	workingDir  = "."
	environment = "prod"
	logEncoder  = "console"

	logger *zap.Logger

	mu  sync.Mutex
	srv *amethyst.Server

	rootCmd = &cobra.Command{
		Use:   "amethyst",
		Short: "Starts the amethyst server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(environment)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := os.Chdir(workingDir); err != nil {
				return err
			}

			logger.Info("loading server from config",
				zap.String("config", configPath),
			)

			if _, err := os.Stat(configPath); err != nil && errors.Is(err, os.ErrNotExist) {
				if err := safeWriteFromEmbeddedFS("configs", "."); err != nil {
					return err
				}
			}

			loader := config.New(configPath, onConfigChange, logger)
			defer loader.Close()

			data, err := loader.Read()
			if err != nil {
				return err
			}

			cfg, err := config.Load(data)
			if err != nil {
				return err
			}

			logger.Debug("generating key pair")
			s, err := amethyst.NewServer(cfg, nil)
			if err != nil {
				return err
			}
			s.Logger = logger

			mu.Lock()
			srv = s
			mu.Unlock()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
			defer stop()

			logger.Debug("starting server")
			if err := s.ListenAndServe(ctx); err != nil && !errors.Is(err, amethyst.ErrServerClosed) {
				return err
			}

			logger.Info("server stopped")
			return nil
		},
	}
)

func envString(name string, defVal string) string {
	envString := os.Getenv(name)
	if envString == "" {
		return defVal
	}

	return envString
}

func init() {
	envVarPrefix := "AMETHYST_"
	workingDir = envString(envVarPrefix+"WORKING_DIR", workingDir)
	rootCmd.PersistentFlags().StringVarP(&workingDir, "working-dir", "w", workingDir, "set the working directory")
	environment = envString(envVarPrefix+"ENVIRONMENT", environment)
	rootCmd.PersistentFlags().StringVarP(&environment, "environment", "e", environment, "set the deployment environment")
	logEncoder = envString(envVarPrefix+"LOG_ENCODER", logEncoder)
	rootCmd.PersistentFlags().StringVarP(&logEncoder, "log-encoder", "l", logEncoder, "set the log encoder")
	configPath = envString(envVarPrefix+"CONFIG", configPath)
	rootCmd.Flags().StringVarP(&configPath, "config", "c", configPath, "path of the config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(defaultsCmd)
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "nop":
		return zap.NewNop(), nil
	case "dev":
		return zap.NewDevelopment()
	case "prod":
		cfg := zap.NewProductionConfig()
		cfg.Encoding = logEncoder
		if logEncoder == "console" {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
		return cfg.Build()
	default:
		return nil, fmt.Errorf("unsupported environment %q", env)
	}
}

// Execute executes the root command.
func Execute(fs embed.FS, v string) error {
	files = fs
	version = v
	return rootCmd.Execute()
}

func safeWriteFromEmbeddedFS(embedPath, sysPath string) error {
	entries, err := files.ReadDir(embedPath)
	if err != nil {
		return err
	}

	for _, e := range entries {
		ePath := fmt.Sprintf("%s/%s", embedPath, e.Name())
		sPath := filepath.Join(sysPath, e.Name())

		if _, err := os.Stat(sPath); err == nil || !os.IsNotExist(err) {
			continue
		}

		if e.IsDir() {
			if err := os.Mkdir(sPath, 0755); err != nil {
				return err
			}

			if err := safeWriteFromEmbeddedFS(ePath, sPath); err != nil {
				return err
			}
			continue
		}

		bb, err := files.ReadFile(ePath)
		if err != nil {
			return err
		}

		if err := os.WriteFile(sPath, bb, 0644); err != nil {
			return err
		}
	}

	return nil
}

func onConfigChange(data map[string]any) {
	mu.Lock()
	defer mu.Unlock()

	if srv == nil {
		return
	}

	cfg, err := config.Load(data)
	if err != nil {
		logger.Error("failed to load config",
			zap.Error(err),
		)
		return
	}

	logger.Debug("reloading server")
	if err := srv.Reload(cfg); err != nil {
		logger.Error("failed to reload server",
			zap.Error(err),
		)
	}
}
