// Package cmd implements the catalog-proxy CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-proxy",
	Short: "Mercado Livre product feed proxy",
	Long: "catalog-proxy fetches the store's Mercado Livre listings, normalizes\n" +
		"them for the storefront and re-exposes them as a cached JSON feed.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		String("config", "config.yaml", "path to the YAML config file")

	cobra.CheckErr(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCommand())
}

func initConfig() {
	// CATALOG_PROXY_CONFIG and friends override flags.
	viper.SetEnvPrefix("CATALOG_PROXY")
	viper.AutomaticEnv()
}

func configPath() string {
	return viper.GetString("config")
}
