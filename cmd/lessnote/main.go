// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lessnote CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lessnote/internal/store"
	"github.com/pdiddy/lessnote/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lessnote CLI.
var rootCmd = &cobra.Command{
	Use:   "lessnote",
	Short: "Generate cloze-deletion flashcards from study documents",
	Long: `lessnote imports study documents into named knowledge groups, classifies
them by inferred purpose, splits their text into sentences, and generates
cloze-deletion flashcards for review.

State lives in memory for the lifetime of one invocation; use the import
command's --export flag to chain ingestion and export in a single run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lessnote.yaml or ~/.config/lessnote/config.yaml)")
	rootCmd.PersistentFlags().String("library-dir", "", "base directory for imported file copies")
	rootCmd.PersistentFlags().String("export-dir", "", "directory export files are written to (default: OS temp dir)")
	rootCmd.PersistentFlags().Bool("no-seed", false, "start without the sample Biology group")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lessnote")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lessnote"))
		}
	}

	viper.SetDefault("library_dir", "library")
	viper.SetDefault("export_dir", "")
	viper.SetDefault("seed_sample", true)
	viper.SetDefault("max_preview", 3)

	viper.SetEnvPrefix("LESSNOTE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// storeConfig assembles the store configuration from viper with flag
// overrides.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	cfg := types.StoreConfig{
		LibraryDir: viper.GetString("library_dir"),
		ExportDir:  viper.GetString("export_dir"),
		SeedSample: viper.GetBool("seed_sample"),
		MaxPreview: viper.GetInt("max_preview"),
	}

	if v, _ := cmd.Flags().GetString("library-dir"); v != "" {
		cfg.LibraryDir = v
	}
	if v, _ := cmd.Flags().GetString("export-dir"); v != "" {
		cfg.ExportDir = v
	}
	if noSeed, _ := cmd.Flags().GetBool("no-seed"); noSeed {
		cfg.SeedSample = false
	}
	return cfg
}

// openStore builds the knowledge store for one invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	return store.NewStore(storeConfig(cmd), nil)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
