// Package main provides the entry point for the sestmpl CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carpoolnu/sestmpl/internal/config"
	"github.com/carpoolnu/sestmpl/internal/envfile"
	"github.com/carpoolnu/sestmpl/internal/logging"
	"github.com/carpoolnu/sestmpl/internal/output"
	"github.com/carpoolnu/sestmpl/internal/store"
)

// Build info set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// templateStore is what commands need from the remote store.
type templateStore interface {
	store.Client
	RenderTemplate(ctx context.Context, name, data string) (string, error)
}

// clientFactory builds the remote store once per command invocation.
type clientFactory func(ctx context.Context, logger zerolog.Logger) (templateStore, error)

// app carries dependencies that tests replace.
type app struct {
	newClient clientFactory
}

// newSESClient builds an SES-backed store from the environment.
func newSESClient(ctx context.Context, logger zerolog.Logger) (templateStore, error) {
	settings := config.LoadAWS()
	logger.Debug().
		Str("region", settings.Region).
		Str("endpoint", settings.Endpoint).
		Bool("static_credentials", settings.HasStaticCredentials()).
		Msg("building SES client")

	cfg, err := settings.SDKConfig(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewSES(cfg, settings.Endpoint, logger), nil
}

func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns a printer for cmd's stdout, with human errors on stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// newLogger builds the diagnostic logger from --log-level.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := logging.New(cmd.ErrOrStderr(), level, output.IsTTY(cmd.ErrOrStderr()))
	if err != nil {
		return zerolog.Nop(), output.NewUserErrorWithCause(err.Error(), err)
	}
	return logger, nil
}

func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command wired to AWS SES.
func newRootCmd() *cobra.Command {
	return newRootCmdWith(app{newClient: newSESClient})
}

func newRootCmdWith(a app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "sestmpl",
		Short: "Provision transactional email templates in AWS SES",
		Long: `sestmpl pushes the transactional email templates to AWS SES.

Each template is created; if SES reports it already exists, it is updated
with the same subject, HTML and text instead. Re-running is safe. Placeholder
tokens such as {{preferredName}} are sent as-is for SES to fill in at send time.

Run without a subcommand to sync the built-in catalog.

AWS settings come from the environment (or .env.local, .env, and the env
file in the config directory):
  ACCESS_KEY_ID_AWS      (or AWS_ACCESS_KEY_ID)
  SECRET_ACCESS_KEY_AWS  (or AWS_SECRET_ACCESS_KEY)
  REGION_AWS             (or AWS_REGION)
  SES_ENDPOINT           optional endpoint override`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, a, nil, dryRun)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			newPrinter(cmd).Error(err)
			return err
		}
		if failed := envfile.LoadAll(config.EnvFiles()...); len(failed) > 0 {
			logger.Warn().Strs("files", failed).Msg("skipping unreadable env files")
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	cmd.PersistentFlags().String("log-level", logging.DefaultLevel, "Diagnostic log level (stderr): debug, info, warn, error, disabled")
	cmd.PersistentFlags().String("catalog", "", "Path to a YAML template catalog (default: built-in catalog)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be synced without calling SES")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newSyncCmd(a))
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newServeCmd(a))

	return cmd
}
