package algorithms

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

func matType(channels int) (gocv.MatType, error) {
	switch channels {
	case 1:
		return gocv.MatTypeCV8UC1, nil
	case 3:
		return gocv.MatTypeCV8UC3, nil
	case 4:
		return gocv.MatTypeCV8UC4, nil
	}
	return gocv.MatTypeCV8UC1, errors.Errorf("unsupported number of channels: %d", channels)
}

// toMat copies img into a Mat owned by the caller
func toMat(img core.Image) (gocv.Mat, error) {
	if err := img.Validate(); err != nil {
		return gocv.NewMat(), err
	}
	mt, err := matType(img.Channels)
	if err != nil {
		return gocv.NewMat(), err
	}

	view, err := gocv.NewMatFromBytes(img.Height, img.Width, mt, img.Pix)
	if err != nil {
		return gocv.NewMat(), errors.Wrap(err, "wrap pixel buffer")
	}
	defer view.Close()

	return view.Clone(), nil
}

// fromMat copies an 8-bit Mat into a new Image
func fromMat(m gocv.Mat) (core.Image, error) {
	if m.Empty() {
		return core.Image{}, errors.New("output image is empty")
	}
	if !m.IsContinuous() {
		c := m.Clone()
		defer c.Close()
		m = c
	}

	img := core.Image{
		Height:   m.Rows(),
		Width:    m.Cols(),
		Channels: m.Channels(),
		Pix:      m.ToBytes(),
	}
	return img, img.Validate()
}

// closeAll releases every Mat in mats
func closeAll(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
