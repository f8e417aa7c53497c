package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/creational/internal/config"
	"github.com/zjrosen/creational/internal/prototype"
	"github.com/zjrosen/creational/internal/registry"
)

var registryListCmd = &cobra.Command{
	Use:   "registry:list",
	Short: "List the prototypes registered from config",
	Long: `List the named prototypes declared under "prototypes" in the config file.

Examples:
  creational registry:list
  creational registry:list -c ./demo.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, sources, err := buildRegistry(cfg.Prototypes, cfg.Registry)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range reg.Names() {
			src, ok := sources[name]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(out, "%-20s value=%d label=%q\n", name, src.Primitive, src.Component.Label); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryListCmd)
}

// buildRegistry registers every configured prototype. The returned map holds
// the registered sources so callers can compare clones against them.
func buildRegistry(protos []config.NamedPrototype, rc config.RegistryConfig) (*registry.Registry[*prototype.Root], map[string]*prototype.Root, error) {
	cleanup := rc.CleanupInterval
	if cleanup <= 0 {
		cleanup = registry.DefaultCleanupInterval
	}
	reg := registry.New[*prototype.Root](rc.TTL, cleanup)

	sources := make(map[string]*prototype.Root, len(protos))
	now := time.Now()
	for _, p := range protos {
		name := registry.NormalizeName(p.Name)
		src := prototype.NewRoot(p.Value, prototype.NewComponent(now, p.Label))
		if err := reg.Register(name, src); err != nil {
			return nil, nil, fmt.Errorf("registering prototype %q: %w", p.Name, err)
		}
		sources[name] = src
	}
	return reg, sources, nil
}
