package commands

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/spend/internal/buildinfo"
	"github.com/cleared-dev/spend/internal/config"
	"github.com/cleared-dev/spend/internal/id"
	"github.com/cleared-dev/spend/internal/importer"
	"github.com/cleared-dev/spend/internal/logging"
	"github.com/cleared-dev/spend/internal/render"
)

// skipConfig marks commands that run without loading spend.yaml.
const skipConfig = "skip-config"

// app carries state shared by all subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string

	now   func() time.Time
	newID id.Generator

	cfg *config.Config
	log *logrus.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{now: time.Now, newID: id.NewUUID})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "spend",
		Short:   "Track expenses for one session and see where the money went",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] != "" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file (env "+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSessionCommand(a))
	rootCmd.AddCommand(newReportCommand(a))
	rootCmd.AddCommand(newCategoriesCommand())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	path := a.configPath
	if !cmd.Flags().Changed("config") {
		path = config.PathFromEnv(path)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	logger, err := logging.Setup(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	a.cfg = cfg
	a.log = logger
	a.log.WithField("config", path).Debug("Config.Loaded")
	return nil
}

func (a *app) renderOptions(breakdown bool) render.Options {
	return render.Options{
		CurrencySymbol: a.cfg.Display.CurrencySymbol,
		DateFormat:     a.cfg.Display.DateFormat,
		Breakdown:      breakdown,
	}
}

func (a *app) importers() *importer.Registry {
	return importer.DefaultRegistry(a.newID, a.now)
}
