package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-augmentation-visualizer/internal/core"
)

// Sample is a named preset. The photo in File is used when present in the
// samples directory; otherwise Render draws a fixed reference image.
type Sample struct {
	Name        string
	File        string
	Attribution string
	Render      func(size int) gocv.Mat
}

// renderedSize is the edge length of drawn reference images
const renderedSize = 256

// DefaultSamples are the presets offered next to the upload button
var DefaultSamples = []Sample{
	{
		Name:        "Flower",
		File:        "flower.jpg",
		Attribution: "Image by Engin Akyurt from Pixabay",
		Render:      renderFlower,
	},
	{
		Name:        "Dog",
		File:        "dog.jpg",
		Attribution: "Image by Marsha Jones from Pixabay",
		Render:      renderDog,
	},
}

// Source is the image a run starts from
type Source struct {
	Image       core.Image
	Origin      string
	Attribution string
}

// SampleProvider resolves named presets from a samples directory
type SampleProvider struct {
	dir     string
	samples []Sample
	loader  *ImageLoader
	logger  logrus.FieldLogger
}

func NewSampleProvider(dir string, samples []Sample, loader *ImageLoader, logger logrus.FieldLogger) *SampleProvider {
	return &SampleProvider{
		dir:     dir,
		samples: samples,
		loader:  loader,
		logger:  logger,
	}
}

// Names returns the preset names in display order
func (sp *SampleProvider) Names() []string {
	names := make([]string, len(sp.samples))
	for i, s := range sp.samples {
		names[i] = s.Name
	}
	return names
}

// Load returns the preset image and its attribution. A preset whose photo is
// missing falls back to its drawn reference image.
func (sp *SampleProvider) Load(name string) (Source, error) {
	for _, s := range sp.samples {
		if s.Name != name {
			continue
		}

		path := filepath.Join(sp.dir, s.File)
		_, statErr := os.Stat(path)
		if s.Render != nil && os.IsNotExist(statErr) {
			sp.logger.WithFields(logrus.Fields{
				"sample": s.Name,
				"path":   path,
			}).Debug("Sample photo not found, drawing reference image")
			return sp.render(s)
		}

		img, err := sp.loader.LoadFile(path)
		if err != nil {
			return Source{}, errors.Wrapf(err, "sample %s", name)
		}
		return Source{Image: img, Origin: s.Name, Attribution: s.Attribution}, nil
	}
	return Source{}, errors.Errorf("unknown sample: %s", name)
}

func (sp *SampleProvider) render(s Sample) (Source, error) {
	mat := s.Render(renderedSize)
	defer mat.Close()

	img, err := sp.loader.fromBGR(mat)
	if err != nil {
		return Source{}, errors.Wrapf(err, "render sample %s", s.Name)
	}
	return Source{
		Image:       img,
		Origin:      s.Name,
		Attribution: fmt.Sprintf("Reference drawing (add %s to the samples directory for the photo)", s.File),
	}, nil
}

// Resolve picks the run's source: an upload takes precedence over the
// selected sample. With neither, core.ErrMissingInput is returned.
func (sp *SampleProvider) Resolve(upload []byte, uploadName, sample string) (Source, error) {
	if len(upload) > 0 {
		img, err := sp.loader.Decode(upload)
		if err != nil {
			return Source{}, err
		}
		return Source{Image: img, Origin: uploadName}, nil
	}
	if sample == "" {
		return Source{}, core.ErrMissingInput
	}

	sp.logger.WithField("sample", sample).Debug("Using sample image")
	return sp.Load(sample)
}
