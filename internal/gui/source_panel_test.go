package gui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-augmentation-visualizer/internal/core"
	imgio "image-augmentation-visualizer/internal/io"
)

func newTestSourcePanel(t *testing.T, defaultSample string) *SourcePanel {
	test.NewTempApp(t)
	logger, _ := logtest.NewNullLogger()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)
	return NewSourcePanel(window, []string{"Flower", "Dog"}, defaultSample, []string{".png"}, logger)
}

func TestSourcePanelDefaultSample(t *testing.T) {
	sp := newTestSourcePanel(t, "Flower")
	sel := sp.Selection()
	assert.Equal(t, "Flower", sel.Sample)
	assert.Empty(t, sel.Upload)
}

func TestSourcePanelUploadAndClear(t *testing.T) {
	sp := newTestSourcePanel(t, "Dog")

	sp.SetUpload("mine.png", []byte{1, 2, 3})
	sel := sp.Selection()
	assert.Equal(t, "mine.png", sel.UploadName)
	assert.Equal(t, []byte{1, 2, 3}, sel.Upload)
	assert.Equal(t, "Dog", sel.Sample)
	assert.False(t, sp.clearBtn.Disabled())

	sp.ClearUpload()
	sel = sp.Selection()
	assert.Empty(t, sel.Upload)
	assert.Empty(t, sel.UploadName)
	assert.True(t, sp.clearBtn.Disabled())
}

func TestResolveWithoutSourceIsMissingInput(t *testing.T) {
	sp := newTestSourcePanel(t, "")
	logger, _ := logtest.NewNullLogger()
	samples := imgio.NewSampleProvider(t.TempDir(), imgio.DefaultSamples, imgio.NewImageLoader(logger), logger)

	_, err := resolve(samples, sp.Selection())
	require.Error(t, err)
	assert.Equal(t, core.ErrMissingInput, err)
}
