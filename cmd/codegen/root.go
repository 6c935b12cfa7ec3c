package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skosovsky/codegen"
	"github.com/skosovsky/codegen/builtin"
	"github.com/skosovsky/codegen/internal/config"
	"github.com/skosovsky/codegen/internal/logging"
	"github.com/skosovsky/codegen/manifest"
)

// app is the state shared by subcommands, filled in by setup before any RunE.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *codegen.Registry
}

func newRootCommand() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "codegen",
		Short: "Render configuration as code from named templates",
		Long: `codegen - Feed a parameter object into a named template and print the result.

Stock generators produce JavaScript, JSON and Python. Additional generators
can be declared in a YAML manifest. Settings come from CODEGEN_* environment
variables; flags take precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringP("manifest", "m", "", "YAML manifest with additional generators")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	flags.String("log-format", "", "Log format: text, json")
	flags.Int("concurrency", 0, "Max generators rendered at once by render --all (0: unbounded)")

	cmd.AddCommand(newListCommand(a), newRenderCommand(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		format, _ := flags.GetString("log-format")
		cfg.Log.Format = config.LogFormat(format)
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	registry := builtin.Registry(registryOptions(cfg, logger)...)

	if path, _ := flags.GetString("manifest"); path != "" {
		generators, err := manifest.ParseFile(path)
		if err != nil {
			return err
		}

		if registry, err = registry.With(generators...); err != nil {
			return err
		}

		logger.Debug().Str("manifest", path).Int("generators", len(generators)).Msg("manifest loaded")
	}

	a.cfg, a.logger, a.registry = cfg, logger, registry

	return nil
}

func registryOptions(cfg *config.Config, logger zerolog.Logger) []codegen.RegistryOption {
	return []codegen.RegistryOption{
		codegen.WithLogger(logger),
		codegen.WithConcurrency(cfg.Concurrency),
	}
}
