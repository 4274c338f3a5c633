package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tutils/randtest/chisquared"
)

// newChisqCmd creates the chisq command
func newChisqCmd() *cobra.Command {
	chisqCmd := &cobra.Command{
		Use:   "chisq",
		Short: "Chi-squared goodness of fit test",
		Long: `Run a chi-squared goodness of fit test. With an independence depth d a draw
only counts once its cell repeated d times in a row. For example:
  randtest chisq --generator=lcg -k 10 -n 100000000 --independence-depth 3
  randtest chisq --generator=middlesquare --seed=0 --critical-value=19.023`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := flagSource()
			if err != nil {
				return err
			}
			k := viper.GetInt("cells")
			crit, err := criticalValue(k)
			if err != nil {
				return err
			}
			res := newTester(name, src).ChiSquared(k, viper.GetInt("independence-depth"), viper.GetInt("draws"), crit)
			return report(cmd, res)
		},
	}

	flags := chisqCmd.Flags()
	addGeneratorFlags(flags)
	addChiSquaredFlags(flags)
	flags.Int("independence-depth", 0, "consecutive repeats required before a draw is counted")

	return chisqCmd
}

func addChiSquaredFlags(flags *pflag.FlagSet) {
	flags.IntP("cells", "k", 10, "number of histogram cells")
	flags.IntP("draws", "n", 100000000, "number of draws")
	flags.Float64("critical-value", 0, "chi-squared critical value (default looked up from --confidence with k-1 degrees of freedom)")
	flags.Float64("confidence", 0.975, fmt.Sprintf("confidence probability for the critical value lookup, one of %v", chisquared.ConfidenceProbAvailable()))
}

func criticalValue(k int) (float64, error) {
	if crit := viper.GetFloat64("critical-value"); crit > 0 {
		return crit, nil
	}
	return chisquared.CriticalValue(k-1, viper.GetFloat64("confidence"))
}
