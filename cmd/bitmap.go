package cmd

import (
	"os"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newBitmapCmd creates the bitmap command
func newBitmapCmd() *cobra.Command {
	bitmapCmd := &cobra.Command{
		Use:   "bitmap",
		Short: "Draw a random black and white PNG",
		Long: `Draw one pixel per value, black below 0.5 and white otherwise. Patterns in
the image show correlations between draws. For example:
  randtest bitmap --generator=middlesquare --seed=0 --width=512 --height=512 --output=ms.png`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			name, src, err := flagSource()
			if err != nil {
				return err
			}

			path := viper.GetString("output")
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(err, "could not create bitmap file")
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = errors.Wrap(cerr, "could not close bitmap file")
				}
			}()

			if err := newTester(name, src).WriteBitmap(viper.GetInt("width"), viper.GetInt("height"), f); err != nil {
				return err
			}
			_ = level.Info(logger).Log("msg", "bitmap written", "path", path)
			return nil
		},
	}

	flags := bitmapCmd.Flags()
	addGeneratorFlags(flags)
	flags.Int("width", 512, "image width in pixels")
	flags.Int("height", 512, "image height in pixels")
	flags.StringP("output", "o", "random.png", "PNG file to write")

	return bitmapCmd
}
