// Renders a run result as a vertical list of stage cards
package gui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-augmentation-visualizer/internal/core"
	imgio "image-augmentation-visualizer/internal/io"
	"image-augmentation-visualizer/internal/metrics"
)

type ResultsView struct {
	window      fyne.Window
	loader      *imgio.ImageLoader
	evaluator   *metrics.Evaluator
	previewSize fyne.Size
	logger      logrus.FieldLogger

	stages *fyne.Container
	scroll *container.Scroll

	mu      sync.Mutex
	current *core.RunResult
}

func NewResultsView(window fyne.Window, loader *imgio.ImageLoader, evaluator *metrics.Evaluator,
	previewSize fyne.Size, logger logrus.FieldLogger) *ResultsView {

	rv := &ResultsView{
		window:      window,
		loader:      loader,
		evaluator:   evaluator,
		previewSize: previewSize,
		logger:      logger,
		stages:      container.NewVBox(),
	}
	rv.scroll = container.NewVScroll(rv.stages)
	return rv
}

func (rv *ResultsView) GetContainer() fyne.CanvasObject {
	return rv.scroll
}

// Current returns the run on display, nil while an introduction is shown
func (rv *ResultsView) Current() *core.RunResult {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	return rv.current
}

func (rv *ResultsView) setCurrent(result *core.RunResult) {
	rv.mu.Lock()
	rv.current = result
	rv.mu.Unlock()
}

// ShowIntro replaces the results with explanatory markdown
func (rv *ResultsView) ShowIntro(markdown string) {
	rv.setCurrent(nil)
	rv.stages.Objects = []fyne.CanvasObject{widget.NewRichTextFromMarkdown(markdown)}
	rv.stages.Refresh()
	rv.scroll.ScrollToTop()
}

// Show renders every snapshot in execution order. The original carries the
// attribution, later stages a difference caption against the previous stage.
func (rv *ResultsView) Show(result *core.RunResult, attribution string) {
	deltas := rv.evaluator.StageDeltas(result)

	objects := make([]fyne.CanvasObject, 0, len(result.Snapshots))
	for i, snap := range result.Snapshots {
		caption := metrics.Format(deltas[i])
		if i == 0 {
			caption = attribution
		}
		objects = append(objects, rv.stageCard(snap, caption))
	}
	if len(result.Snapshots) > 1 {
		legend := widget.NewLabelWithStyle(rv.evaluator.Legend(), fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		objects = append(objects, legend)
	}

	rv.setCurrent(result)
	rv.stages.Objects = objects
	rv.stages.Refresh()
	rv.scroll.ScrollToTop()

	rv.logger.WithFields(logrus.Fields{
		"run_id": result.ID,
		"stages": len(result.Snapshots) - 1,
	}).Debug("GUI: Results rendered")
}

func (rv *ResultsView) stageCard(snap core.Snapshot, caption string) fyne.CanvasObject {
	img := canvas.NewImageFromImage(snap.Image.ToGoImage())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(rv.previewSize)

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		rv.saveSnapshot(snap)
	})

	info := widget.NewLabel(fmt.Sprintf("%dx%d, %d channel(s)", snap.Image.Width, snap.Image.Height, snap.Image.Channels))
	footer := container.NewBorder(nil, nil, info, saveBtn)

	return widget.NewCard(snap.Label, caption, container.NewBorder(nil, footer, nil, nil, img))
}

func (rv *ResultsView) saveSnapshot(snap core.Snapshot) {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, rv.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		data, err := rv.loader.EncodePNG(snap.Image)
		if err == nil {
			_, err = writer.Write(data)
		}
		if err != nil {
			rv.logger.WithError(err).Error("GUI: Saving snapshot failed")
			dialog.ShowError(err, rv.window)
			return
		}
		rv.logger.WithFields(logrus.Fields{
			"stage": snap.Label,
			"uri":   writer.URI().String(),
		}).Info("GUI: Snapshot saved")
	}, rv.window)

	saveDialog.SetFileName(snap.Label + ".png")
	saveDialog.Show()
}
