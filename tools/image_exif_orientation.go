package tools

import (
	"bytes"
	"image"

	"cloud.google.com/go/logging"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// TryFindExifOrientation returns the EXIF orientation tag of an encoded image,
// or 1 (upright) when the image carries no usable EXIF data.
func TryFindExifOrientation(logger Logger, data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Log(logging.Entry{
			Severity: logging.Debug,
			Payload:  "No EXIF data, applying default image orientation.",
			Labels:   map[string]string{"error": err.Error()},
		})
		return 1
	}

	orientTag, err := x.Get(exif.Orientation)
	if err != nil {
		logger.Log(logging.Entry{
			Severity: logging.Debug,
			Payload:  "No orientation tag, applying default image orientation.",
			Labels:   map[string]string{"error": err.Error()},
		})
		return 1
	}

	imageOrientation, err := orientTag.Int(0)
	if err != nil || imageOrientation < 1 || imageOrientation > 8 {
		logger.Log(logging.Entry{
			Severity: logging.Warning,
			Payload:  "Unreadable orientation tag, applying default image orientation.",
		})
		return 1
	}

	return imageOrientation
}

// Orientations 5 to 8 are stored rotated by 90 degrees.
func OrientationSwapsAxes(orientation int) bool {
	return orientation >= 5 && orientation <= 8
}

func CorrectImageOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
