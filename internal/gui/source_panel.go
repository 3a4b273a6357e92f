// Image selection: an uploaded file or one of the bundled samples
package gui

import (
	stdio "io"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	imgio "image-augmentation-visualizer/internal/io"
)

// SourceSelection is an immutable snapshot of the source controls
type SourceSelection struct {
	Upload     []byte
	UploadName string
	Sample     string
}

// SourcePanel lets the user upload an image or pick a sample
type SourcePanel struct {
	window fyne.Window
	logger logrus.FieldLogger

	mu         sync.RWMutex
	upload     []byte
	uploadName string
	sample     string

	extensions   []string
	uploadLabel  *widget.Label
	sampleSelect *widget.Select
	clearBtn     *widget.Button
	container    *fyne.Container
}

// NewSourcePanel lists the samples; extensions filters the upload dialog
func NewSourcePanel(window fyne.Window, samples []string, defaultSample string, extensions []string,
	logger logrus.FieldLogger) *SourcePanel {
	sp := &SourcePanel{
		window:     window,
		logger:     logger,
		extensions: extensions,
	}

	sp.uploadLabel = widget.NewLabel("No file uploaded")
	sp.uploadLabel.Truncation = fyne.TextTruncateEllipsis

	uploadBtn := widget.NewButtonWithIcon("Upload...", theme.FolderOpenIcon(), sp.OpenUploadDialog)
	sp.clearBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), sp.ClearUpload)
	sp.clearBtn.Disable()

	sp.sampleSelect = widget.NewSelect(samples, func(name string) {
		sp.mu.Lock()
		sp.sample = name
		sp.mu.Unlock()
	})
	if defaultSample != "" {
		sp.sampleSelect.SetSelected(defaultSample)
	}

	sp.container = container.NewVBox(
		widget.NewLabel("(Optional) Upload an image file here:"),
		container.NewBorder(nil, nil, nil, sp.clearBtn, uploadBtn),
		sp.uploadLabel,
		widget.NewLabel("Or select a sample file here:"),
		sp.sampleSelect,
	)
	return sp
}

func (sp *SourcePanel) GetContainer() fyne.CanvasObject {
	return sp.container
}

// Selection returns the current state; the upload buffer is never mutated
// after it is stored, so it can be shared with a running pipeline
func (sp *SourcePanel) Selection() SourceSelection {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	return SourceSelection{
		Upload:     sp.upload,
		UploadName: sp.uploadName,
		Sample:     sp.sample,
	}
}

func (sp *SourcePanel) OpenUploadDialog() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, sp.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := stdio.ReadAll(reader)
		if err != nil {
			dialog.ShowError(err, sp.window)
			return
		}
		sp.SetUpload(reader.URI().Name(), data)
	}, sp.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(sp.extensions))
	fileDialog.Show()
}

// SetUpload stores the uploaded bytes; they take precedence over the sample
func (sp *SourcePanel) SetUpload(name string, data []byte) {
	sp.mu.Lock()
	sp.upload = data
	sp.uploadName = name
	sp.mu.Unlock()

	sp.logger.WithFields(logrus.Fields{
		"name":  name,
		"bytes": len(data),
	}).Info("Image uploaded")
	sp.uploadLabel.SetText("📄 " + name)
	sp.clearBtn.Enable()
}

func (sp *SourcePanel) ClearUpload() {
	sp.mu.Lock()
	sp.upload = nil
	sp.uploadName = ""
	sp.mu.Unlock()

	sp.uploadLabel.SetText("No file uploaded")
	sp.clearBtn.Disable()
}

// resolve turns a selection into the run's source image
func resolve(samples *imgio.SampleProvider, sel SourceSelection) (imgio.Source, error) {
	return samples.Resolve(sel.Upload, sel.UploadName, sel.Sample)
}
