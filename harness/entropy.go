package harness

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// name of the single entry in the scratch archive
	entryName = "chars.txt"
	// draws become 7 bit ASCII characters
	charRange = 128

	scratchBufferSize = 32 << 10
)

// Entropy writes characters random ASCII characters both to a plain scratch
// file and to a zip archive, and compares the two sizes. Result.Statistic is
// uncompressed size / compressed size; the test passes when it is below
// passingRatio, i.e. when the data does not compress well.
//
// Scratch files are removed on every path. An I/O failure fails the test and
// is reported in Result.Err.
func (t *Tester) Entropy(characters int, passingRatio float64) Result {
	t.begin(EntropyTest, "characters", characters, "passing_ratio", passingRatio)
	res := Result{Name: EntropyTest, Threshold: passingRatio}
	if characters <= 0 {
		res.Err = errors.Errorf("invalid number of characters %d", characters)
		t.logError("entropy test not run", res.Err)
		return t.finish(res)
	}

	plainSize, zipSize, err := t.writeScratch(characters)
	if err != nil {
		res.Err = err
		t.logError("entropy test aborted", err)
		return t.finish(res)
	}

	res.Statistic = float64(plainSize) / float64(zipSize)
	t.info("msg", "compressed scratch data",
		"uncompressed_bytes", plainSize,
		"compressed_bytes", zipSize,
		"ratio", res.Statistic,
	)
	res.Passed = res.Statistic < passingRatio
	return t.finish(res)
}

// EntropyWithZipRatio is Entropy reduced to its verdict.
func (t *Tester) EntropyWithZipRatio(characters int, passingRatio float64) bool {
	return t.Entropy(characters, passingRatio).Passed
}

// writeScratch returns the sizes of the plain and the zipped file.
func (t *Tester) writeScratch(characters int) (plainSize, zipSize int64, err error) {
	fs := t.opts.fs

	plain, err := afero.TempFile(fs, "", "randtest-*.txt")
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not create uncompressed scratch file")
	}
	defer discard(fs, plain)

	archive, err := afero.TempFile(fs, "", "randtest-*.zip")
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not create compressed scratch file")
	}
	defer discard(fs, archive)

	zw := zip.NewWriter(archive)
	// the default level stores incompressible blocks verbatim, which would
	// hide a skewed symbol distribution
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})
	entry, err := zw.Create(entryName)
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not add zip entry")
	}

	w := bufio.NewWriterSize(io.MultiWriter(plain, entry), scratchBufferSize)
	for i := 0; i < characters; i++ {
		if err := w.WriteByte(byte(t.bucket(charRange))); err != nil {
			return 0, 0, errors.Wrap(err, "could not write scratch data")
		}
	}
	if err := w.Flush(); err != nil {
		return 0, 0, errors.Wrap(err, "could not write scratch data")
	}
	if err := zw.Close(); err != nil {
		return 0, 0, errors.Wrap(err, "could not finish zip archive")
	}
	if err := archive.Close(); err != nil {
		return 0, 0, errors.Wrap(err, "could not close compressed scratch file")
	}
	if err := plain.Close(); err != nil {
		return 0, 0, errors.Wrap(err, "could not close uncompressed scratch file")
	}

	plainInfo, err := fs.Stat(plain.Name())
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not stat uncompressed scratch file")
	}
	zipInfo, err := fs.Stat(archive.Name())
	if err != nil {
		return 0, 0, errors.Wrap(err, "could not stat compressed scratch file")
	}
	return plainInfo.Size(), zipInfo.Size(), nil
}

// discard closes and removes a scratch file. Closing twice is harmless here.
func discard(fs afero.Fs, f afero.File) {
	_ = f.Close()
	_ = fs.Remove(f.Name())
}
