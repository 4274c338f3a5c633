package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// newEntropyCmd creates the entropy command
func newEntropyCmd() *cobra.Command {
	entropyCmd := &cobra.Command{
		Use:   "entropy",
		Short: "Zip compression ratio entropy test",
		Long: `Write random ASCII characters to a plain and a zipped scratch file and fail
when the data compresses too well. For example:
  randtest entropy --generator=lcg --characters=33554432 --passing-ratio=1.15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := flagSource()
			if err != nil {
				return err
			}
			res := newTester(name, src).Entropy(viper.GetInt("characters"), viper.GetFloat64("passing-ratio"))
			return report(cmd, res)
		},
	}

	flags := entropyCmd.Flags()
	addGeneratorFlags(flags)
	addEntropyFlags(flags)

	return entropyCmd
}

func addEntropyFlags(flags *pflag.FlagSet) {
	flags.IntP("characters", "c", 33554432, "number of characters to compress")
	flags.Float64("passing-ratio", 1.15, "compression ratio at or above which the test fails")
}
