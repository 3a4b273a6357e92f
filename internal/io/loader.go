// Image decoding, loading and saving backed by OpenCV codecs
package io

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// ImageLoader converts between encoded image files and core.Image. Decoded
// images are RGB (or grayscale) with 8-bit samples.
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// Decode turns uploaded bytes into an image. Empty input means nothing was
// uploaded and yields core.ErrMissingInput.
func (il *ImageLoader) Decode(data []byte) (core.Image, error) {
	if len(data) == 0 {
		return core.Image{}, core.ErrMissingInput
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadAnyColor)
	if err != nil {
		return core.Image{}, errors.Wrap(err, "decode image")
	}
	defer mat.Close()
	if mat.Empty() {
		return core.Image{}, errors.New("decode image: unrecognized or corrupted data")
	}

	img, err := il.fromBGR(mat)
	if err != nil {
		return core.Image{}, err
	}

	il.logger.WithFields(logrus.Fields{
		"bytes": len(data),
		"shape": img.Shape().String(),
	}).Debug("Image decoded")
	return img, nil
}

// LoadFile reads and decodes an image file
func (il *ImageLoader) LoadFile(path string) (core.Image, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !il.IsSupported(path) {
		return core.Image{}, errors.Errorf("unsupported image format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.Image{}, errors.Wrap(err, "read image file")
	}
	img, err := il.Decode(data)
	if err != nil {
		return core.Image{}, errors.Wrapf(err, "load %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    img.Width,
		"height":   img.Height,
		"channels": img.Channels,
	}).Info("Image loaded successfully")
	return img, nil
}

// Save writes img to path; the format follows the file extension
func (il *ImageLoader) Save(img core.Image, path string) error {
	if !il.IsSupported(path) {
		return errors.Errorf("unsupported image format: %s", path)
	}

	mat, err := il.toBGR(img)
	if err != nil {
		return err
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return errors.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"shape":    img.Shape().String(),
	}).Info("Image saved successfully")
	return nil
}

// EncodePNG encodes img as PNG bytes
func (il *ImageLoader) EncodePNG(img core.Image) ([]byte, error) {
	mat, err := il.toBGR(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

func (il *ImageLoader) IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// SupportedExtensions lists the file extensions accepted by LoadFile and Save
func (il *ImageLoader) SupportedExtensions() []string {
	return append([]string(nil), supportedFormats...)
}

func (il *ImageLoader) fromBGR(mat gocv.Mat) (core.Image, error) {
	rgb := gocv.NewMat()
	defer rgb.Close()

	switch mat.Channels() {
	case 3:
		gocv.CvtColor(mat, &rgb, gocv.ColorBGRToRGB)
	case 4:
		gocv.CvtColor(mat, &rgb, gocv.ColorBGRAToRGBA)
	default:
		mat.CopyTo(&rgb)
	}

	img := core.Image{
		Height:   rgb.Rows(),
		Width:    rgb.Cols(),
		Channels: rgb.Channels(),
		Pix:      rgb.ToBytes(),
	}
	return img, img.Validate()
}

func (il *ImageLoader) toBGR(img core.Image) (gocv.Mat, error) {
	if err := img.Validate(); err != nil {
		return gocv.NewMat(), err
	}

	var mt gocv.MatType
	code := gocv.ColorRGBToBGR
	switch img.Channels {
	case 1:
		mt = gocv.MatTypeCV8UC1
	case 3:
		mt = gocv.MatTypeCV8UC3
	case 4:
		mt = gocv.MatTypeCV8UC4
		code = gocv.ColorRGBAToBGRA
	}

	view, err := gocv.NewMatFromBytes(img.Height, img.Width, mt, img.Pix)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "wrap pixel buffer")
	}
	defer view.Close()

	if img.Channels == 1 {
		return view.Clone(), nil
	}
	bgr := gocv.NewMat()
	gocv.CvtColor(view, &bgr, code)
	return bgr, nil
}
