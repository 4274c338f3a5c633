package cmd

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tutils/randtest"
	"github.com/tutils/randtest/generator/lcg"
)

var sampleKinds = []string{"float64", "float32", "int32", "int64", "bool", "gaussian", "intn"}

// newSampleCmd creates the sample command
func newSampleCmd() *cobra.Command {
	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Print values drawn from a generator",
		Long: `Print values drawn from a generator, one per line. Every generator supports
float64; the other kinds are only available from the lcg generator. For example:
  randtest sample --generator=lcg --seed=816559 --count=10 --kind=intn --bound=6
  randtest sample --generator=middlesquare --seed=0 --count=5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := flagSource()
			if err != nil {
				return err
			}
			next, err := sampler(name, src, viper.GetString("kind"), viper.GetInt("bound"))
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()
			for i := 0; i < viper.GetInt("count"); i++ {
				s, err := next()
				if err != nil {
					return err
				}
				fmt.Fprintln(w, s)
			}
			return nil
		},
	}

	flags := sampleCmd.Flags()
	addGeneratorFlags(flags)
	flags.Int("count", 10, "number of values to print")
	flags.String("kind", "float64", fmt.Sprintf("kind of value, one of %v", sampleKinds))
	flags.Int("bound", 100, "exclusive upper bound for --kind=intn")

	return sampleCmd
}

func sampler(name string, src randtest.Source, kind string, bound int) (func() (string, error), error) {
	if kind == "float64" {
		return func() (string, error) {
			return strconv.FormatFloat(src.Float64(), 'g', -1, 64), nil
		}, nil
	}

	g, ok := src.(*lcg.Generator)
	if !ok {
		for _, k := range sampleKinds {
			if k == kind {
				return nil, fmt.Errorf("kind %q is not available from generator %q", kind, name)
			}
		}
		return nil, fmt.Errorf("unknown kind %q, expected one of %v", kind, sampleKinds)
	}

	switch kind {
	case "float32":
		return func() (string, error) {
			return strconv.FormatFloat(float64(g.Float32()), 'g', -1, 32), nil
		}, nil
	case "int32":
		return func() (string, error) {
			return strconv.FormatInt(int64(g.Int32()), 10), nil
		}, nil
	case "int64":
		return func() (string, error) {
			return strconv.FormatInt(g.Int64(), 10), nil
		}, nil
	case "bool":
		return func() (string, error) {
			return strconv.FormatBool(g.Bool()), nil
		}, nil
	case "gaussian":
		return func() (string, error) {
			return strconv.FormatFloat(g.Gaussian(), 'g', -1, 64), nil
		}, nil
	case "intn":
		return func() (string, error) {
			n, err := g.Intn(bound)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(n), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q, expected one of %v", kind, sampleKinds)
	}
}
