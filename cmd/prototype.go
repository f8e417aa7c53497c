package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/creational/internal/prototype"
	"github.com/zjrosen/creational/internal/report"
)

var errObservationFailed = errors.New("clone observation failed")

var prototypeCmd = &cobra.Command{
	Use:   "prototype",
	Short: "Clone a root with a back-reference and report the result",
	Long: `Builds a root holding a primitive value, a timestamp component and a
back-reference node, clones it, and prints four checks per clone:

  primitive value carried over to clone    true
  clone shares component with source       false
  clone back-reference points at clone     true
  clone back-reference points at source    false

Examples:
  creational prototype
  creational prototype --value 7 --copies 3`,
	RunE: runPrototype,
}

func init() {
	prototypeCmd.Flags().Int("value", 0, "primitive value of the source (default from config, 245)")
	prototypeCmd.Flags().Int("copies", 0, "number of clones to produce (default from config, 1)")
	prototypeCmd.Flags().String("label", "", "label stored on the source component")

	_ = viper.BindPFlag("prototype.value", prototypeCmd.Flags().Lookup("value"))
	_ = viper.BindPFlag("prototype.copies", prototypeCmd.Flags().Lookup("copies"))
	_ = viper.BindPFlag("prototype.label", prototypeCmd.Flags().Lookup("label"))

	rootCmd.AddCommand(prototypeCmd)
}

func runPrototype(cmd *cobra.Command, _ []string) error {
	provider, shutdown, err := startTracing()
	if err != nil {
		return err
	}
	defer shutdown()

	ctx, span := provider.Tracer().Start(cmd.Context(), "creational.prototype")
	defer span.End()

	out := cmd.OutOrStdout()
	src := prototype.NewRoot(cfg.Prototype.Value, prototype.NewComponent(time.Now(), cfg.Prototype.Label))
	_, _ = fmt.Fprintf(out, "source %s primitive=%d\n", src.ID, src.Primitive)

	cloner := prototype.NewCloner(provider.Tracer())
	clones := make([]*prototype.Root, 0, cfg.Prototype.Copies)
	failed := false
	for i := 0; i < cfg.Prototype.Copies; i++ {
		c := cloner.Clone(ctx, src)
		clones = append(clones, c)
		if err := report.Write(out, src, c); err != nil {
			return err
		}
		if !prototype.Observe(src, c).OK() {
			failed = true
		}
	}

	if len(clones) > 1 {
		if err := report.WriteDistinct(out, clones); err != nil {
			return err
		}
	}

	if failed {
		return errObservationFailed
	}
	return nil
}
