// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the jpegify CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the configured directory when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "jpegify",
	Short: "Convert every image under a directory to JPEG in place",
	Long: `jpegify walks a directory recursively and rewrites every image that is
not already a .jpg as a JPEG next to the original, flattening transparency
onto a solid background. SVG files are rasterized first. The original is
deleted once its JPEG has been written.

Files ending in .jpg (any case) are never touched. Per-file failures are
logged and the run continues; the exit status is always zero.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./jpegify.yaml or ~/.config/jpegify/config.yaml)")
	rootCmd.PersistentFlags().String("journal", "", "SQLite journal file recording every run (disabled when empty)")
	_ = viper.BindPFlag(keyJournal, rootCmd.PersistentFlags().Lookup("journal"))

	registerConvertFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jpegify")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jpegify"))
		}
	}

	viper.SetEnvPrefix("JPEGIFY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
