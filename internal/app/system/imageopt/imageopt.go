// internal/app/system/imageopt/imageopt.go

// Package imageopt produces the optimized derivative written alongside
// each uploaded original image. Non-image uploads are stored as-is and
// never pass through here.
package imageopt

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"
)

// MaxDimension bounds the longest edge of the optimized derivative.
const MaxDimension = 1920

// optimizable lists the MIME types we generate derivatives for.
var optimizable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// CanOptimize reports whether a derivative should be produced for the
// given MIME type.
func CanOptimize(mimeType string) bool {
	return optimizable[strings.ToLower(mimeType)]
}

// Optimize reads the original image at srcPath, downscales it to fit
// MaxDimension, and writes the derivative to dstPath. The destination
// directory must already exist.
func Optimize(srcPath, dstPath string) error {
	img, err := decode(srcPath)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}
	return imaging.Save(img, dstPath, imaging.JPEGQuality(82))
}

// decode opens and decodes the source image. imaging handles JPEG, PNG,
// and GIF; WebP sources need the dedicated decoder.
func decode(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return webp.Decode(f)
	}
	return imaging.Open(path, imaging.AutoOrientation(true))
}
