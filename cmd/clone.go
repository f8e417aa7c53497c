package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/creational/internal/log"
	"github.com/zjrosen/creational/internal/prototype"
	"github.com/zjrosen/creational/internal/registry"
	"github.com/zjrosen/creational/internal/report"
)

var cloneCmd = &cobra.Command{
	Use:   "clone <name>",
	Short: "Clone a named prototype from the registry",
	Long: `Look up a prototype registered from the config file, clone it, and
report the same checks as the prototype command.

Examples:
  creational clone reference
  creational registry:list   # show available names`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := registry.NormalizeName(args[0])

		reg, sources, err := buildRegistry(cfg.Prototypes, cfg.Registry)
		if err != nil {
			return err
		}

		provider, shutdown, err := startTracing()
		if err != nil {
			return err
		}
		defer shutdown()

		_, span := provider.Tracer().Start(cmd.Context(), "creational.clone")
		defer span.End()
		span.SetAttributes(prototype.AttrName.String(name))

		c, err := reg.Get(name)
		if err != nil {
			log.ErrorErr(log.CatRegistry, "Lookup failed", err, "name", name)
			return fmt.Errorf("cloning %q: %w", name, err)
		}

		src, ok := sources[name]
		if !ok {
			return fmt.Errorf("cloning %q: %w", name, registry.ErrNotFound)
		}
		if err := report.Write(cmd.OutOrStdout(), src, c); err != nil {
			return err
		}
		if !prototype.Observe(src, c).OK() {
			return errObservationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cloneCmd)
}
