package cmd

import (
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tutils/randtest/harness"
)

// newSuiteCmd creates the suite command
func newSuiteCmd() *cobra.Command {
	suiteCmd := &cobra.Command{
		Use:   "suite",
		Short: "Run every test against several generators",
		Long: `Run the chi-squared test at each independence depth, the entropy test and the
pi test against each generator and print how many tests each one passed.
Without --seed the middle-square generator starts from 0 and the others from
the clock. For example:
  randtest suite
  randtest suite --generators=lcg,math --draws=1000000 --depths=0,1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := viper.GetInt("cells")
			crit, err := criticalValue(k)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range viper.GetStringSlice("generators") {
				seed, seeded := viper.GetInt64("seed"), viper.IsSet("seed")
				if name == middleSquareGenerator && !seeded {
					seed, seeded = 0, true
				}
				src, err := newSource(name, seed, seeded)
				if err != nil {
					return err
				}

				_ = level.Info(logger).Log("msg", "testing generator", "generator", name)
				fmt.Fprintf(out, "Testing %s...\n", name)

				tester := newTester(name, src)
				var results []harness.Result
				for _, depth := range viper.GetIntSlice("depths") {
					results = append(results, tester.ChiSquared(k, depth, viper.GetInt("draws"), crit))
				}
				results = append(results,
					tester.Entropy(viper.GetInt("characters"), viper.GetFloat64("passing-ratio")),
					tester.PiEstimate(viper.GetInt("points"), viper.GetFloat64("accepted-error")),
				)

				passed := 0
				for _, res := range results {
					fmt.Fprintln(out, "  "+res.String())
					if res.Passed {
						passed++
					}
				}
				fmt.Fprintf(out, "%s passed %d/%d tests.\n\n", name, passed, len(results))
			}
			return nil
		},
	}

	flags := suiteCmd.Flags()
	flags.StringSlice("generators", generatorNames, "generators to test")
	addSeedFlag(flags)
	addChiSquaredFlags(flags)
	flags.IntSlice("depths", []int{0, 1, 3}, "independence depths to run the chi-squared test with")
	addEntropyFlags(flags)
	addPiFlags(flags)

	return suiteCmd
}
