package cmd

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-kit/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tutils/randtest"
	"github.com/tutils/randtest/generator"
	"github.com/tutils/randtest/generator/lcg"
	"github.com/tutils/randtest/generator/middlesquare"
	"github.com/tutils/randtest/harness"
)

const (
	middleSquareGenerator = "middlesquare"
	lcgGenerator          = "lcg"
	mathGenerator         = "math"
)

var generatorNames = []string{middleSquareGenerator, lcgGenerator, mathGenerator}

// newSource builds the named generator, from seed when seeded is set and
// from the clock otherwise
func newSource(name string, seed int64, seeded bool) (randtest.Source, error) {
	switch name {
	case middleSquareGenerator:
		if !seeded {
			return middlesquare.NewDefault(), nil
		}
		return middlesquare.New(seed), nil
	case lcgGenerator:
		if !seeded {
			return lcg.NewDefault(), nil
		}
		return lcg.New(seed), nil
	case mathGenerator:
		if !seeded {
			seed = generator.ClockSeed()
		}
		return rand.New(rand.NewSource(seed)), nil
	default:
		return nil, fmt.Errorf("unknown generator %q, expected one of %s", name, strings.Join(generatorNames, ","))
	}
}

// flagSource builds the generator named by --generator
func flagSource() (string, randtest.Source, error) {
	name := viper.GetString("generator")
	src, err := newSource(name, viper.GetInt64("seed"), viper.IsSet("seed"))
	return name, src, err
}

func newTester(name string, src randtest.Source) *harness.Tester {
	return harness.New(src,
		harness.WithVerbose(!viper.GetBool("quiet")),
		harness.WithLogger(log.With(logger, "generator", name)),
	)
}

func addGeneratorFlags(flags *pflag.FlagSet) {
	flags.StringP("generator", "g", lcgGenerator, "generator to test, one of "+strings.Join(generatorNames, ","))
	addSeedFlag(flags)
}

func addSeedFlag(flags *pflag.FlagSet) {
	flags.Int64P("seed", "s", 0, "generator seed (default derived from the clock)")
}
