package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/cmdemo/internal/logging"
	"github.com/oxygene76/cmdemo/pkg/demo"
	"github.com/oxygene76/cmdemo/pkg/linalg"
	"github.com/oxygene76/cmdemo/pkg/utils"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err's message only. Formatting registered errors with
// %v appends the source location of the wrap.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err.Error())
}

// cli carries state shared by all subcommands of one invocation
type cli struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	config *utils.Config
	logger log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "cmdemo",
		Short: "Non-commutative operator demonstration",
		Long: `Applies two linear operators to a state vector in both orders and
reports how far the two resulting states diverge.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd.ErrOrStderr())
		},
		RunE: c.runDemo,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.cmdemo/config.yaml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")
	flags.String("format", "", "output format: text, json or yaml")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Float64("epsilon", 0, "divergence threshold")
	_ = c.v.BindPFlag("output.format", flags.Lookup("format"))
	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("demo.epsilon", flags.Lookup("epsilon"))

	rootCmd.AddCommand(
		c.runCmd(),
		c.commutatorCmd(),
		c.configCmd(),
	)

	return rootCmd
}

func (c *cli) initConfig(stderr io.Writer) error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			c.v.AddConfigPath(filepath.Join(home, ".cmdemo"))
		}
		c.v.AddConfigPath(".")
		c.v.SetConfigName("config")
		c.v.SetConfigType("yaml")
	}

	config, err := utils.LoadConfig(c.v)
	if err != nil {
		return err
	}
	if c.verbose {
		config.Log.Level = "debug"
	}

	logger, err := logging.New(config.Log.Level, stderr)
	if err != nil {
		return err
	}
	if used := c.v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	c.config = config
	c.logger = logger
	return nil
}

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the demonstration (default)",
		Args:  cobra.NoArgs,
		RunE:  c.runDemo,
	}
}

func (c *cli) runDemo(cmd *cobra.Command, args []string) error {
	params, err := c.config.Params()
	if err != nil {
		return err
	}

	result, runErr := demo.NewRunner(c.logger).Run(cmd.Context(), params)
	if result != nil {
		if err := result.Write(cmd.OutOrStdout(), c.config.Output.Format); err != nil {
			if runErr != nil {
				c.logger.Error("failed to write report", "err", err)
				return runErr
			}
			return err
		}
	}
	return runErr
}

func (c *cli) commutatorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commutator",
		Short: "Print AB - BA for the configured operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := c.config.Params()
			if err != nil {
				return err
			}

			comm, err := linalg.Commutator(params.A, params.B)
			if err != nil {
				return err
			}
			norm := comm.FrobeniusNorm()
			c.logger.Debug("commutator computed", "frobenius_norm", norm)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "[A, B] = AB - BA:")
			fmt.Fprintln(out, comm)
			fmt.Fprintf(out, "Frobenius norm: %.4f\n", norm)
			if norm == 0 {
				fmt.Fprintln(out, "Operators commute.")
			} else {
				fmt.Fprintln(out, "Operators do not commute.")
			}
			return nil
		},
	}
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(
		c.configInitCmd(),
		c.configShowCmd(),
	)

	return cmd
}

func (c *cli) configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			force, _ := cmd.Flags().GetBool("force")

			if path == "" {
				var err error
				if path, err = utils.GetConfigPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			if err := utils.SaveConfig(utils.DefaultConfig(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().String("path", "", "destination (default is $HOME/.cmdemo/config.yaml)")
	cmd.Flags().Bool("force", false, "overwrite an existing file")

	return cmd
}

func (c *cli) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(c.config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
