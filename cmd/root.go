package cmd

import (
	stdlog "log"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tutils/randtest/logging"
)

var (
	cfgFile string

	logFormat = logging.DefaultFormat(os.Stderr)
	logLevel  = logging.LevelInfo

	// set up before any command runs
	logger log.Logger = log.NewNopLogger()
)

// newRootCmd creates the base command, with every subcommand attached
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "randtest",
		Short: "Pseudo-random number generator test harness.",
		Long: `Pseudo-random number generator test harness.
Repo: https://github.com/tutils/randtest
Run the chi-squared, zip entropy and Monte Carlo pi tests against the
middle-square generator, the linear congruential generator or math/rand, For example:
  randtest suite --generators=middlesquare,lcg,math
  randtest chisq --generator=lcg --seed=816559 -k 10 --independence-depth 1
  randtest bitmap --generator=middlesquare --output=ms.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := logFormat.Set(viper.GetString("log-format")); err != nil {
				return err
			}
			if err := logLevel.Set(viper.GetString("log-level")); err != nil {
				return err
			}
			logger = log.With(logging.New(cmd.ErrOrStderr(), logFormat, logLevel), "run", uuid.New().String())
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.randtest.yaml)")
	flags.Var(&logFormat, "log-format", "log format")
	flags.Var(&logLevel, "log-level", "minimum log level")
	flags.BoolP("quiet", "q", false, "only print results, no test diagnostics")

	rootCmd.AddCommand(
		newSuiteCmd(),
		newChisqCmd(),
		newEntropyCmd(),
		newPiCmd(),
		newBitmapCmd(),
		newSampleCmd(),
	)
	return rootCmd
}

// Execute builds the command tree and runs it.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		stdlog.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".randtest" (without extension).
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home)
		} else {
			stdlog.Println(err)
		}
		viper.SetConfigName(".randtest")
	}

	viper.SetEnvPrefix("randtest")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		stdlog.Println("Using config file:", viper.ConfigFileUsed())
	}
}
