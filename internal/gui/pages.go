// Page definitions: the pipeline builder and the single-transformation demos
package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"image-augmentation-visualizer/internal/config"
	"image-augmentation-visualizer/internal/core"
)

// Page is one entry of the navigation list
type Page interface {
	Title() string
	Intro() string
	// Controls returns the page's sidebar widgets
	Controls() fyne.CanvasObject
}

// RunFunc starts a run with the pipeline returned by build
type RunFunc func(title string, build func() (core.Pipeline, error))

const pipelineIntro = `# Visualize an image augmentation pipeline
### Select the components of the pipeline in the sidebar.

Once you have chosen the augmentation techniques, select or upload an image.
Then click **Apply** to start!

After clicking Apply, the individual steps of the pipeline are visualized.
The output of the previous step is the input to the next step.`

// PipelinePage offers one toggle per kind in canonical order
type PipelinePage struct {
	checks   []*widget.Check
	controls fyne.CanvasObject
	describe func(core.Kind) string
}

// NewPipelinePage builds the toggles; describe supplies the per-kind text of
// the page introduction
func NewPipelinePage(run RunFunc, describe func(core.Kind) string) *PipelinePage {
	p := &PipelinePage{describe: describe}

	box := container.NewVBox(widget.NewLabel("Choose the transformations here:"))
	for _, kind := range core.PipelineKinds {
		check := widget.NewCheck(kind.String(), nil)
		p.checks = append(p.checks, check)
		box.Add(check)
	}
	box.Add(widget.NewButtonWithIcon("Apply", theme.MediaPlayIcon(), func() {
		selections := p.Selections()
		run(p.Title(), func() (core.Pipeline, error) {
			return core.BuildPipeline(selections)
		})
	}))

	p.controls = box
	return p
}

func (p *PipelinePage) Title() string               { return "Pipeline" }
func (p *PipelinePage) Controls() fyne.CanvasObject { return p.controls }

func (p *PipelinePage) Intro() string {
	var b strings.Builder
	b.WriteString(pipelineIntro)
	b.WriteString("\n\n### Available transformations\n\n")
	for _, kind := range core.PipelineKinds {
		fmt.Fprintf(&b, "- **%s**: %s\n", kind, p.describe(kind))
	}
	return b.String()
}

// Selections snapshots the toggles, aligned with core.PipelineKinds
func (p *PipelinePage) Selections() []bool {
	selections := make([]bool, len(p.checks))
	for i, c := range p.checks {
		selections[i] = c.Checked
	}
	return selections
}

// SliderSpec describes one numeric parameter of a demo page
type SliderSpec struct {
	Key     string
	Label   string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// ToggleSpec describes one boolean parameter of a demo page
type ToggleSpec struct {
	Key     string
	Label   string
	Default bool
}

// DemoValues is an immutable snapshot of a demo page's controls
type DemoValues struct {
	Numbers map[string]float64
	Flags   map[string]bool
}

// DemoSpec fully describes a single-transformation page
type DemoSpec struct {
	Title       string
	Kind        core.Kind
	Description string
	Sliders     []SliderSpec
	Toggles     []ToggleSpec
	Build       func(v DemoValues) (core.Pipeline, error)
}

// DemoPage is the generic single-stage page: sliders in, one stage out
type DemoPage struct {
	spec     DemoSpec
	sliders  map[string]*widget.Slider
	toggles  map[string]*widget.Check
	controls fyne.CanvasObject
}

func NewDemoPage(spec DemoSpec, run RunFunc) *DemoPage {
	p := &DemoPage{
		spec:    spec,
		sliders: make(map[string]*widget.Slider),
		toggles: make(map[string]*widget.Check),
	}

	box := container.NewVBox()
	if len(spec.Sliders)+len(spec.Toggles) > 0 {
		box.Add(widget.NewLabelWithStyle("Parameters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	}
	for _, s := range spec.Sliders {
		box.Add(p.addSlider(s))
	}
	for _, t := range spec.Toggles {
		check := widget.NewCheck(t.Label, nil)
		check.SetChecked(t.Default)
		p.toggles[t.Key] = check
		box.Add(check)
	}
	box.Add(widget.NewButtonWithIcon("Apply", theme.MediaPlayIcon(), func() {
		values := p.Values()
		run(spec.Title, func() (core.Pipeline, error) {
			return spec.Build(values)
		})
	}))

	p.controls = box
	return p
}

func (p *DemoPage) addSlider(s SliderSpec) fyne.CanvasObject {
	valueLabel := widget.NewLabel("")
	slider := widget.NewSlider(s.Min, s.Max)
	slider.Step = s.Step
	slider.OnChanged = func(v float64) {
		valueLabel.SetText(formatSliderValue(v, s.Step))
	}
	slider.SetValue(s.Default)
	valueLabel.SetText(formatSliderValue(slider.Value, s.Step))

	p.sliders[s.Key] = slider
	return container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel(s.Label), valueLabel),
		slider,
	)
}

func formatSliderValue(v, step float64) string {
	if step >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func (p *DemoPage) Title() string { return p.spec.Title }

func (p *DemoPage) Intro() string {
	return fmt.Sprintf("# %s Demo\n\nThis demo shows the effects of `%s` transformation and its parameters. %s\n\nSelect an image and click **Apply**.",
		p.spec.Title, p.spec.Kind, p.spec.Description)
}

func (p *DemoPage) Controls() fyne.CanvasObject { return p.controls }

// SetValue moves a slider programmatically
func (p *DemoPage) SetValue(key string, v float64) {
	if s, ok := p.sliders[key]; ok {
		s.SetValue(v)
	}
}

// Values snapshots every slider and toggle
func (p *DemoPage) Values() DemoValues {
	v := DemoValues{
		Numbers: make(map[string]float64, len(p.sliders)),
		Flags:   make(map[string]bool, len(p.toggles)),
	}
	for key, s := range p.sliders {
		v.Numbers[key] = s.Value
	}
	for key, c := range p.toggles {
		v.Flags[key] = c.Checked
	}
	return v
}

// DemoSpecs returns the demo pages, seeded with the configured defaults
func DemoSpecs(d config.DemoConfig) []DemoSpec {
	return []DemoSpec{
		{
			Title:       "Gaussian Blur",
			Kind:        core.KindGaussianBlur,
			Description: "Even blur limits are raised to the next odd kernel size.",
			Sliders: []SliderSpec{
				{Key: "blur_limit", Label: "How much blur?", Min: 0, Max: 100, Step: 2, Default: float64(d.GaussianBlur.BlurLimit)},
				{Key: "sigma_limit", Label: "Sigma?", Min: 0, Max: 100, Step: 0.1, Default: d.GaussianBlur.SigmaLimit},
			},
			Build: func(v DemoValues) (core.Pipeline, error) {
				return core.BuildGaussianBlur(core.GaussianBlurSettings{
					BlurLimit:  int(v.Numbers["blur_limit"]),
					SigmaLimit: v.Numbers["sigma_limit"],
				})
			},
		},
		{
			Title:       "Gaussian Noise",
			Kind:        core.KindGaussNoise,
			Description: "The noise variance is drawn from the given bounds.",
			Sliders: []SliderSpec{
				{Key: "var_lower", Label: "Variance (lower bound)?", Min: 0, Max: 100, Step: 0.1, Default: d.GaussNoise.VarLower},
				{Key: "var_upper", Label: "Variance (upper bound)?", Min: 0, Max: 100, Step: 0.1, Default: d.GaussNoise.VarUpper},
				{Key: "mean", Label: "Mean?", Min: 0, Max: 100, Step: 0.1, Default: d.GaussNoise.Mean},
			},
			Toggles: []ToggleSpec{
				{Key: "per_channel", Label: "Apply per channel?", Default: d.GaussNoise.PerChannel},
			},
			Build: func(v DemoValues) (core.Pipeline, error) {
				return core.BuildGaussNoise(core.GaussNoiseSettings{
					VarLower:   v.Numbers["var_lower"],
					VarUpper:   v.Numbers["var_upper"],
					Mean:       v.Numbers["mean"],
					PerChannel: v.Flags["per_channel"],
				})
			},
		},
		{
			Title: "Vertical Flip",
			Kind:  core.KindVerticalFlip,
			Build: func(DemoValues) (core.Pipeline, error) {
				return core.BuildSingle(core.KindVerticalFlip)
			},
		},
		{
			Title:       "Advanced Blur",
			Kind:        core.KindAdvancedBlur,
			Description: "Equal sigma limits are separated slightly so the sampling range never collapses.",
			Sliders: []SliderSpec{
				{Key: "blur_limit", Label: "How much blur?", Min: 0, Max: 100, Step: 2, Default: float64(d.AdvancedBlur.BlurLimit)},
				{Key: "sigma_x", Label: "Sigma X?", Min: 0, Max: 100, Step: 0.1, Default: d.AdvancedBlur.SigmaX},
				{Key: "sigma_y", Label: "Sigma Y?", Min: 0, Max: 100, Step: 0.1, Default: d.AdvancedBlur.SigmaY},
				{Key: "rotate_limit", Label: "Rotation?", Min: -180, Max: 180, Step: 1, Default: float64(d.AdvancedBlur.RotateLimit)},
				{Key: "beta", Label: "β?", Min: 1.01, Max: 2, Step: 0.01, Default: d.AdvancedBlur.Beta},
				{Key: "noise", Label: "Noise?", Min: 0, Max: 2, Step: 0.01, Default: d.AdvancedBlur.Noise},
			},
			Build: func(v DemoValues) (core.Pipeline, error) {
				return core.BuildAdvancedBlur(core.AdvancedBlurSettings{
					BlurLimit:   int(v.Numbers["blur_limit"]),
					SigmaX:      v.Numbers["sigma_x"],
					SigmaY:      v.Numbers["sigma_y"],
					RotateLimit: int(v.Numbers["rotate_limit"]),
					Beta:        v.Numbers["beta"],
					Noise:       v.Numbers["noise"],
				})
			},
		},
	}
}
