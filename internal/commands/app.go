package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/pegvault/internal/auth"
	"github.com/idelchi/pegvault/internal/config"
	"github.com/idelchi/pegvault/internal/history"
	"github.com/idelchi/pegvault/internal/logging"
	"github.com/idelchi/pegvault/internal/logic"
)

// EnvPrefix prefixes the environment variables bound to every flag.
const EnvPrefix = "PEGVAULT"

// errShown stops a command after --show printed the configuration.
var errShown = errors.New("configuration shown")

// app carries the state shared by all commands of one invocation.
type app struct {
	cfg    config.Config
	viper  *viper.Viper
	logger zerolog.Logger
}

func newApp() *app {
	return &app{cfg: config.Default(), viper: viper.New(), logger: zerolog.Nop()}
}

// load merges the config file, environment and flags into a.cfg and validates it.
// Flags win over the environment, which wins over the config file.
func (a *app) load(cmd *cobra.Command, args []string) error {
	a.viper.SetEnvPrefix(EnvPrefix)
	a.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.viper.AutomaticEnv()

	if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if file := a.viper.GetString("config"); file != "" {
		a.viper.SetConfigFile(file)

		if err := a.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", file, err)
		}
	}

	if err := a.viper.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	a.cfg.Files = args

	logger, err := logging.FromString(a.cfg.LogLevel)
	if err != nil {
		return err
	}

	a.logger = logger

	if err := a.cfg.Validate(); err != nil {
		if a.cfg.History != "" {
			history.New(a.cfg.History, a.logger).Note(history.EventConfigError, "%v", err)
		}

		return err
	}

	if a.cfg.Show {
		shown, err := a.cfg.Display()
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), shown)

		return errShown
	}

	a.logger.Debug().Strs("files", a.cfg.Files).Str("command", cmd.CommandPath()).Msg("configuration loaded")

	return nil
}

// run returns a RunE that loads the configuration and hands fn the services.
func (a *app) run(fn func(*logic.Services, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.load(cmd, args); err != nil {
			return ignoreShown(err)
		}

		svc, err := logic.New(&a.cfg, logic.Options{
			Logger: a.logger,
			Out:    cmd.OutOrStdout(),
			Err:    cmd.ErrOrStderr(),
			Prompt: auth.Prompt(os.Stdin, cmd.ErrOrStderr()),
		})
		if err != nil {
			return err
		}

		return fn(svc, args)
	}
}

func ignoreShown(err error) error {
	if errors.Is(err, errShown) {
		return nil
	}

	return err
}
