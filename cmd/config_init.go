package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/creational/internal/config"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "config:init [path]",
	Short: "Write a default config file",
	Long: `Write the default configuration as commented YAML.

The file goes to ./` + localConfigPath + ` unless a path is given.
An existing file is kept unless --force is set.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipValidation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := localConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefaultConfig(path, configInitForce); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(configInitCmd)
}
