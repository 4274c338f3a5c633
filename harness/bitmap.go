package harness

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Bitmap draws a width x height black and white image, one draw per pixel,
// column by column. A draw below 0.5 paints the pixel black. Visible
// patterns point at correlations the numeric tests may miss.
func (t *Tester) Bitmap(width, height int) *image.Gray {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	t.begin("bitmap", "width", width, "height", height)

	img := image.NewGray(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			px := color.Gray{Y: 0xff}
			if t.draw() < 0.5 {
				px.Y = 0
			}
			img.SetGray(x, y, px)
		}
	}

	t.flush()
	t.info("msg", "bitmap generated", "draws", t.draws.Value(), "elapsed_seconds", time.Since(t.start).Seconds())
	return img
}

// WriteBitmap draws a bitmap and encodes it to w as PNG.
func (t *Tester) WriteBitmap(width, height int, w io.Writer) error {
	img := t.Bitmap(width, height)
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "could not write bitmap")
	}
	return nil
}
