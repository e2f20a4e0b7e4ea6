package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "vmt",
	Short: "Work with Source engine VMT material files",
	Long: `vmt generates VMT material documents from texture names, merges
regenerated parameters into hand-edited files without losing custom
tuning, and formats and checks existing documents.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "Config file (default: .vmt.yaml in working directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
}

// initConfig loads the optional config file and sets the log level.
func initConfig() {
	if cfg, _ := rootCmd.PersistentFlags().GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.SetConfigName(".vmt")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("VMT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("loaded config")
	}

	if ok, _ := rootCmd.PersistentFlags().GetBool("verbose"); ok {
		log.SetLevel(log.DebugLevel)
	}
}
