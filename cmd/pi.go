package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tutils/randtest/harness"
)

// newPiCmd creates the pi command
func newPiCmd() *cobra.Command {
	piCmd := &cobra.Command{
		Use:   "pi",
		Short: "Monte Carlo pi estimate test",
		Long: `Estimate pi from random points in the unit square and fail when the relative
error is not below the accepted error. For example:
  randtest pi --generator=math --points=1000000 --accepted-error=0.001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := flagSource()
			if err != nil {
				return err
			}
			res := newTester(name, src).PiEstimate(viper.GetInt("points"), viper.GetFloat64("accepted-error"))
			return report(cmd, res)
		},
	}

	flags := piCmd.Flags()
	addGeneratorFlags(flags)
	addPiFlags(flags)

	return piCmd
}

func addPiFlags(flags *pflag.FlagSet) {
	flags.IntP("points", "p", 1000000, "number of points")
	flags.Float64("accepted-error", 0.001, "largest relative error that still passes")
}

// report prints a single result and turns a failed test into an error
func report(cmd *cobra.Command, res harness.Result) error {
	fmt.Fprintln(cmd.OutOrStdout(), res)
	if !res.Passed {
		return fmt.Errorf("%s test failed", res.Name)
	}
	return nil
}
