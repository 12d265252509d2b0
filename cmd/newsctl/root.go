package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/vitalvas/newsapi/config"
	"github.com/vitalvas/newsapi/internal/logger"
	"github.com/vitalvas/newsapi/newsapi"
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	output     string
	overrides  config.Config

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "newsctl",
		Short: "Publishing API client",
		Long: `newsctl creates, updates, reads, searches and deletes articles through the
publishing API. Settings come from a YAML file (--config), the environment
and flags, in increasing order of precedence.

Environment:
` + config.Describe(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML configuration file")
	flags.StringVar(&a.overrides.APIID, "api-id", "", "API key identifier")
	flags.StringVar(&a.overrides.APISecret, "api-secret", "", "Base64-encoded API secret")
	flags.StringVar(&a.overrides.Host, "host", "", "API host without scheme or port")
	flags.IntVar(&a.overrides.Port, "port", 0, "HTTPS port")
	flags.BoolVar(&a.overrides.InsecureSkipVerify, "insecure-skip-verify", false, "Skip TLS certificate verification")
	flags.DurationVar(&a.overrides.Timeout, "timeout", 0, "Per-request timeout")
	flags.StringVar(&a.overrides.Log.Level, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVarP(&a.output, "output", "o", outputJSON, "Output format: json or yaml")

	cmd.AddCommand(
		a.channelCmd(),
		a.sectionCmd(),
		a.articleCmd(),
		a.bundleCmd(),
		a.signCmd(),
		versionCmd(),
	)

	return cmd
}

// setup loads the configuration, applies flags set on the command line
// and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("api-id") {
		cfg.APIID = a.overrides.APIID
	}

	if flags.Changed("api-secret") {
		cfg.APISecret = a.overrides.APISecret
	}

	if flags.Changed("host") {
		cfg.Host = a.overrides.Host
	}

	if flags.Changed("port") {
		cfg.Port = a.overrides.Port
	}

	if flags.Changed("insecure-skip-verify") {
		cfg.InsecureSkipVerify = a.overrides.InsecureSkipVerify
	}

	if flags.Changed("timeout") {
		cfg.Timeout = a.overrides.Timeout
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = a.overrides.Log.Level
	}

	switch a.output {
	case outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, a.stderr)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log

	return nil
}

// client builds an API client from the loaded configuration.
func (a *app) client() (*newsapi.Client, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	return newsapi.New(a.cfg.Client(), newsapi.WithLogger(a.logger))
}

// withClient runs fn with a fresh client and releases its connections
// afterwards.
func (a *app) withClient(fn func(*newsapi.Client) error) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.CloseIdleConnections()

	start := time.Now()
	err = fn(client)
	a.logger.Debug().Dur("elapsed", time.Since(start)).Err(err).Msg("command finished")

	return err
}
