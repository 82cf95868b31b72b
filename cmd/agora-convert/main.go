// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the agora-convert CLI, which downloads
// a MINHA CDN access log and writes it out in the Agora log format.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/agora-convert/internal/convert"
	"github.com/pdiddy/agora-convert/internal/destpath"
	"github.com/pdiddy/agora-convert/internal/httputil"
	"github.com/pdiddy/agora-convert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and synced by main before exit.
var logger = zap.NewNop()

const usageLine = "Wrong parameters. Usage: agora-convert http://remotefile ./localfile"

// errUsage is returned when the positional arguments are missing.
var errUsage = errors.New("missing source URL or destination path")

// rootCmd converts one remote log per invocation.
var rootCmd = &cobra.Command{
	Use:   "agora-convert <remote-source-url> <local-destination-path>",
	Short: "Convert a remote MINHA CDN log into an Agora log file",
	Long: `agora-convert downloads a log in the MINHA CDN format and rewrites each
line into the Agora format, appending a header block and the converted lines
to the destination file.

A relative destination path resolves against the directory that contains the
agora-convert executable, not the current working directory. Use --base-dir to
resolve against another directory.

The destination is opened in append mode: running twice against the same file
adds a second header and record block. If the download or any line fails, the
destination file is deleted.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return errUsage
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./agora-convert.yaml or ~/.config/agora-convert/config.yaml)")
	flags.Duration("timeout", 0, "timeout for the whole download (0 waits indefinitely)")
	flags.String("user-agent", defaultUserAgent(), "User-Agent header sent to the source server")
	flags.String("base-dir", "", "directory relative destination paths resolve against (default: executable directory)")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	viper.BindPFlag("timeout", flags.Lookup("timeout"))
	viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
	viper.BindPFlag("base_dir", flags.Lookup("base-dir"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("agora-convert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "agora-convert"))
		}
	}

	viper.SetEnvPrefix("AGORA_CONVERT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultUserAgent() string {
	return "agora-convert/" + version
}

// loadConfig assembles the run configuration from flags, environment and
// config file.
func loadConfig() types.ConversionConfig {
	return types.ConversionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		BaseDir: viper.GetString("base_dir"),
		Verbose: viper.GetBool("verbose"),
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	sourceURL := args[0]

	var dest string
	var err error
	if cfg.BaseDir != "" {
		dest, err = destpath.ResolveFrom(cfg.BaseDir, args[1])
	} else {
		dest, err = destpath.Resolve(args[1])
	}
	if err != nil {
		return fmt.Errorf("resolving destination: %w", err)
	}

	runLogger := logger.With(zap.String("run_id", uuid.NewString()))
	runLogger.Debug("resolved destination",
		zap.String("argument", args[1]),
		zap.String("path", dest),
		zap.Duration("timeout", cfg.Timeout))

	client := httputil.NewClient(cfg.HTTPConfig)
	if _, err := convert.Run(cmd.Context(), client, cfg.HTTPConfig, runLogger, sourceURL, dest); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Process Completed!")
	return nil
}

// reportError prints err in the form the CLI promises on stderr.
func reportError(w io.Writer, err error) {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(w, usageLine)
		return
	}
	fmt.Fprintf(w, "An error occurs: %v\n", err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
