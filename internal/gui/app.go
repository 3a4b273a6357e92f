// Main application window: navigation, shared image source, results
package gui

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"image-augmentation-visualizer/internal/algorithms"
	"image-augmentation-visualizer/internal/config"
	"image-augmentation-visualizer/internal/core"
	imgio "image-augmentation-visualizer/internal/io"
	"image-augmentation-visualizer/internal/metrics"
)

// Application represents the main application window
type Application struct {
	app    fyne.App
	window fyne.Window
	cfg    config.Config
	logger *logrus.Logger

	// Core components
	loader    *imgio.ImageLoader
	samples   *imgio.SampleProvider
	runner    *core.Runner
	evaluator *metrics.Evaluator

	// GUI components
	source      *SourcePanel
	results     *ResultsView
	menuHandler *MenuHandler
	pages       []Page
	pageList    *widget.List
	controls    *fyne.Container
	status      *widget.Label
	progress    *widget.ProgressBarInfinite

	registry *algorithms.Registry
	runs     runGate
	running  sync.WaitGroup
}

func NewApplication(app fyne.App, cfg config.Config, logger *logrus.Logger) *Application {
	window := app.NewWindow("Image Augmentation Visualizer")
	window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		cfg:    cfg,
		logger: logger,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()

	return a
}

func (a *Application) initializeCore() {
	a.loader = imgio.NewImageLoader(a.logger)
	a.samples = imgio.NewSampleProvider(a.cfg.Samples.Dir, imgio.DefaultSamples, a.loader, a.logger)
	a.registry = algorithms.NewRegistry(a.cfg.Seed, a.logger)
	a.runner = core.NewRunner(a.registry, a.logger)
	a.evaluator = metrics.NewEvaluator()
}

func (a *Application) initializeGUI() {
	a.source = NewSourcePanel(a.window, a.samples.Names(), a.cfg.Samples.Default, a.loader.SupportedExtensions(), a.logger)
	a.results = NewResultsView(a.window, a.loader, a.evaluator,
		fyne.NewSize(float32(a.cfg.Preview.Width), float32(a.cfg.Preview.Height)), a.logger)
	a.menuHandler = NewMenuHandler(a.window, a.source, a.logger)

	a.pages = append(a.pages, NewPipelinePage(a.Run, a.registry.Describe))
	for _, spec := range DemoSpecs(a.cfg.Demos) {
		a.pages = append(a.pages, NewDemoPage(spec, a.Run))
	}

	a.status = widget.NewLabel("Ready")
	a.progress = widget.NewProgressBarInfinite()
	a.progress.Hide()
}

func (a *Application) setupLayout() {
	a.pageList = widget.NewList(
		func() int {
			return len(a.pages)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Page")
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(a.pages[id].Title())
		},
	)
	a.pageList.OnSelected = a.selectPage

	a.controls = container.NewStack()

	sidebar := container.NewVBox(
		widget.NewCard("🖼️ Image selection", "", a.source.GetContainer()),
		widget.NewCard("⚙️ Transformations", "", a.controls),
	)

	left := container.NewVSplit(a.pageList, container.NewVScroll(sidebar))
	left.SetOffset(0.25)

	statusBar := container.NewBorder(nil, nil, nil, a.progress, a.status)
	center := container.NewBorder(nil, statusBar, nil, nil, a.results.GetContainer())

	main := container.NewHSplit(left, center)
	main.SetOffset(0.25)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(main)
	a.pageList.Select(0)
}

func (a *Application) selectPage(id widget.ListItemID) {
	page := a.pages[id]
	a.controls.Objects = []fyne.CanvasObject{page.Controls()}
	a.controls.Refresh()
	a.results.ShowIntro(page.Intro())
	a.updateStatusMessage(page.Title())
}

// Run resolves the source image, builds the pipeline and executes it off the
// UI goroutine. A missing image is reported before the pipeline is built.
// Starting a run supersedes the one in flight; a superseded run never
// touches the widgets.
func (a *Application) Run(title string, build func() (core.Pipeline, error)) {
	selection := a.source.Selection()
	ctx, gen := a.runs.Start()

	a.progress.Show()
	a.updateStatusMessage(fmt.Sprintf("⏳ Running %s...", title))

	a.running.Add(1)
	go func() {
		defer a.running.Done()
		defer a.runs.Finish(gen)

		result, attribution, err := a.execute(ctx, selection, build)
		if !a.runs.Current(gen) {
			a.logger.WithField("title", title).Debug("GUI: Dropping superseded run")
			return
		}

		fyne.Do(func() {
			if !a.runs.Current(gen) {
				return
			}
			a.progress.Hide()
			if err != nil {
				a.showError(title, err)
				return
			}
			a.results.Show(result, attribution)
			a.updateStatusMessage(fmt.Sprintf("✅ %s: %d stage(s)", title, len(result.Snapshots)-1))
		})
	}()
}

func (a *Application) execute(ctx context.Context, sel SourceSelection, build func() (core.Pipeline, error)) (*core.RunResult, string, error) {
	src, err := resolve(a.samples, sel)
	if err != nil {
		return nil, "", err
	}

	pipeline, err := build()
	if err != nil {
		return nil, "", err
	}

	a.logger.WithFields(logrus.Fields{
		"origin": src.Origin,
		"stages": pipeline.Labels(),
	}).Info("GUI: Running pipeline")

	result, err := a.runner.Run(ctx, src.Image, pipeline)
	if err != nil {
		return nil, "", err
	}
	return result, src.Attribution, nil
}

func (a *Application) updateStatusMessage(message string) {
	a.status.SetText(message)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)

	var stageErr *core.StageExecutionError
	if errors.As(err, &stageErr) {
		a.updateStatusMessage(fmt.Sprintf("❌ Stage %d (%s) failed", stageErr.Index, stageErr.Kind))
	} else {
		a.updateStatusMessage(fmt.Sprintf("❌ Error: %s", err.Error()))
	}
	dialog.ShowError(err, a.window)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.runs.Stop()
}

// runGate hands out run generations. Only the latest generation is current;
// starting a new one cancels the previous context.
type runGate struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Start cancels the run in flight and opens a new generation
func (g *runGate) Start() (context.Context, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.gen++
	g.cancel = cancel
	return ctx, g.gen
}

// Current reports whether gen is the latest generation and was not stopped
func (g *runGate) Current(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.gen && g.cancel != nil
}

// Finish releases the context of gen once its run returned
func (g *runGate) Finish(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen == g.gen && g.cancel != nil {
		g.cancel()
	}
}

// Stop cancels the run in flight and invalidates every generation
func (g *runGate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.gen++
}
