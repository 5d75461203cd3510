package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/actionserver"
	"github.com/aretw0/actionserver/internal/config"
	"github.com/aretw0/actionserver/internal/logging"
	"github.com/aretw0/actionserver/pkg/catalog"
)

// actionsValue is the --actions flag. It only accepts dotted package paths,
// so a folder path fails while arguments are parsed.
type actionsValue struct {
	specifier string
}

var _ pflag.Value = (*actionsValue)(nil)

func (v *actionsValue) String() string { return v.specifier }

func (v *actionsValue) Set(s string) error {
	if err := catalog.Validate(s); err != nil {
		return err
	}
	v.specifier = s
	return nil
}

func (v *actionsValue) Type() string { return "package" }

// serverFlags holds the flags shared by every command that builds an engine.
type serverFlags struct {
	configPath    string
	actions       actionsValue
	port          int
	cors          []string
	logLevel      string
	sslCert       string
	sslKey        string
	sslPassword   string
	actionTimeout time.Duration
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &serverFlags{actions: actionsValue{specifier: config.DefaultActions}}

	rootCmd := &cobra.Command{
		Use:   "action-server",
		Short: "Serve custom actions for a conversational assistant",
		Long: `action-server runs the actions registered in a Go package and exposes them
over a webhook (POST /webhook). Running it without a sub-command is the same as "run".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	pf.Var(&flags.actions, "actions", "dotted path of the actions package to load (e.g. actions.act)")
	pf.IntVarP(&flags.port, "port", "p", config.DefaultPort, "port to run the server at")
	pf.StringSliceVar(&flags.cors, "cors", []string{"*"}, "enable CORS for the given origins")
	pf.StringVar(&flags.logLevel, "logging-level", config.DefaultLogLevel, "log level: debug, info, warning, error, critical")
	pf.StringVar(&flags.sslCert, "ssl-certificate", "", "SSL certificate for HTTPS")
	pf.StringVar(&flags.sslKey, "ssl-keyfile", "", "SSL private key for HTTPS")
	pf.StringVar(&flags.sslPassword, "ssl-password", "", "password of an encrypted SSL keyfile")
	pf.DurationVar(&flags.actionTimeout, "action-timeout", 0, "upper bound for a single action run (0 disables)")

	runCmd := newRunCmd(flags)
	rootCmd.RunE = runCmd.RunE
	rootCmd.AddCommand(runCmd, newMCPCmd(flags), newActionsCmd(flags), newVersionCmd())

	return rootCmd
}

// loadConfig merges the config file, environment and explicitly set flags.
func loadConfig(cmd *cobra.Command, flags *serverFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	set := cmd.Flags().Changed
	if set("actions") {
		cfg.Actions = flags.actions.specifier
	}
	if set("port") {
		cfg.Port = flags.port
	}
	if set("cors") {
		cfg.CORS = flags.cors
	}
	if set("logging-level") {
		cfg.LogLevel = flags.logLevel
	}
	if set("ssl-certificate") {
		cfg.SSLCertificate = flags.sslCert
	}
	if set("ssl-keyfile") {
		cfg.SSLKeyfile = flags.sslKey
	}
	if set("ssl-password") {
		cfg.SSLPassword = flags.sslPassword
	}
	if set("action-timeout") {
		cfg.ActionTimeout = flags.actionTimeout
	}

	return cfg, cfg.Validate()
}

// newEngine builds the logger and the engine. Discovery errors surface here,
// before anything binds a port.
func newEngine(cfg config.Config) (*actionserver.Engine, *slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	eng, err := actionserver.New(
		actionserver.WithActionsPackage(cfg.Actions),
		actionserver.WithActionTimeout(cfg.ActionTimeout),
		actionserver.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to load actions", "package", cfg.Actions, "err", err)
		return nil, nil, err
	}
	return eng, logger, nil
}
