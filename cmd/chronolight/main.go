package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cyp0633/chronolight/cmd/chronolight/commands"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chronolight",
	Short: "Chronolight - calendar conversion and schedule occurrences",
	Long: `Chronolight converts between epoch milliseconds and Gregorian dates
(1970-4000, UTC) and tells when recurring schedules fire next.

Schedules are read from YAML files:

  start: "2020-04-30T00:00:00.000"
  items:
    - unit: year
      every: 1
  end: "2025-04-30"`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(commands.ToUnixCmd)
	rootCmd.AddCommand(commands.FromUnixCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.NextCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.EncodeCmd)
	rootCmd.AddCommand(commands.IcalCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chronolight.yaml)")
	rootCmd.PersistentFlags().String("engine", "disabled-cache", "engine preset: default, high-performance, low-memory or disabled-cache")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")

	mustBindFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	mustBindFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// mustBindFlag binds a flag to a viper key. It only fails for a nil flag,
// which is a wiring mistake.
func mustBindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".chronolight")
	}

	viper.SetEnvPrefix("chronolight")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "reading config:", err)
	}
}
