package tools

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Images above this many pixels are never decoded in full.
const MaxDecodePixels = 40_000_000

var ErrImageTooLarge = errors.New("image dimensions exceed the decode budget")

func GetImageDimensions(img image.Image) (int, int) {
	return img.Bounds().Dx(), img.Bounds().Dy()
}

// DecodeImageDimensions reads the header of an encoded image and returns its
// dimensions as a viewer would display them, EXIF orientation applied.
func DecodeImageDimensions(logger Logger, data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, errors.New("invalid image dimensions")
	}

	if OrientationSwapsAxes(TryFindExifOrientation(logger, data)) {
		return cfg.Height, cfg.Width, nil
	}
	return cfg.Width, cfg.Height, nil
}

// ResizeImageToHeight decodes an image, fixes its orientation and scales it
// to the given height keeping the aspect ratio. The result is written as JPEG.
// The header is checked first: images over MaxDecodePixels fail with
// ErrImageTooLarge before any pixel is decoded.
func ResizeImageToHeight(logger Logger, data []byte, height int, w io.Writer) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxDecodePixels {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	img = CorrectImageOrientation(img, TryFindExifOrientation(logger, data))

	if _, h := GetImageDimensions(img); h > height {
		img = imaging.Resize(img, 0, height, imaging.Lanczos)
	}

	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(85))
}
