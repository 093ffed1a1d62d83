package cmd

import (
	"fmt"

	"github.com/mj1618/openfiles/internal/config"
	"github.com/mj1618/openfiles/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings (config file plus flags)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(settings)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configInitCmd, configShowCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func configPath() (string, error) {
	if p, _ := rootCmd.PersistentFlags().GetString("config"); p != "" {
		return p, nil
	}
	return config.Path()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, err := configPath()
	if err != nil {
		return err
	}
	if !force && fileExists(path) {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}
	if err := config.Write(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
