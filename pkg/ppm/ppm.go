package ppm

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Write encodes img as a binary PPM (P6) image: an ASCII header with the
// dimensions and maximum channel value, followed by rows of raw RGB bytes
// from top to bottom. The alpha channel is dropped.
func Write(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}

	row := make([]byte, 3*width)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		i := 0
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			row[i] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			i += 3
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes img to filename, picking the format from the extension:
// ".png" for PNG, ".gz" for a gzip-compressed PPM, anything else for plain
// PPM. The image is written to a temporary file in the same directory and
// renamed into place, so a failed write never leaves a corrupt file at the
// target path.
func WriteFile(filename string, img *image.RGBA) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}

	if err := encode(tmp, filename, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %v", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %v", filename, err)
	}

	// CreateTemp uses restrictive permissions, widen to a normal output file.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %v", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %v", filename, err)
	}
	return nil
}

func encode(w io.Writer, filename string, img *image.RGBA) error {
	switch {
	case strings.HasSuffix(filename, ".png"):
		return png.Encode(w, img)
	case strings.HasSuffix(filename, ".gz"):
		gz := gzip.NewWriter(w)
		if err := Write(gz, img); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	default:
		return Write(w, img)
	}
}
