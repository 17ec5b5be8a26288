package cmd

import (
	"fmt"
	"os"

	"github.com/bgraf/randomimage/config"
	"github.com/bgraf/randomimage/logging"
	"github.com/bgraf/randomimage/store"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "randomimage",
	Short:         "Render random image thumbnails from a media collection",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.randomimage.yaml)")

	rootCmd.PersistentFlags().StringP("store", "s", "", "Path of the SQLite content store")
	rootCmd.PersistentFlags().StringP("media-dir", "m", "", "Media directory holding the files")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Mark pages with random images as uncacheable")
	rootCmd.PersistentFlags().Bool("miser-mode", false, "Skip the MIME type check when sampling")

	bindFlag(config.KeyStorePath, "store")
	bindFlag(config.KeyMediaDirectory, "media-dir")
	bindFlag(config.KeyLogLevel, "log-level")
	bindFlag(config.KeyNoCache, "no-cache")
	bindFlag(config.KeyMiserMode, "miser-mode")
}

func bindFlag(key string, name string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in the working directory, then home, with name ".randomimage".
		if dir, err := os.Getwd(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".randomimage")
	}

	viper.SetEnvPrefix("randomimage")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (*zap.Logger, error) {
	return logging.New(config.LogLevel())
}

func openStore() (*store.Store, error) {
	if !config.HasMediaDirectory() {
		return nil, fmt.Errorf("no media directory configured")
	}

	s, err := store.Open(config.StorePath(), config.MediaDirectory())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return s, nil
}
