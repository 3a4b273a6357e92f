// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"
)

const aboutText = `Image Augmentation Visualizer

Pick an image, choose augmentations and see the image after every step.
Each step's output is the next step's input.`

// MenuHandler handles menu actions
type MenuHandler struct {
	window fyne.Window
	source *SourcePanel
	logger logrus.FieldLogger
}

func NewMenuHandler(window fyne.Window, source *SourcePanel, logger logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{
		window: window,
		source: source,
		logger: logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Upload Image...", mh.source.OpenUploadDialog),
		fyne.NewMenuItem("Clear Upload", mh.source.ClearUpload),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

func (mh *MenuHandler) showAbout() {
	mh.logger.Debug("Showing about dialog")
	dialog.ShowInformation("About", aboutText, mh.window)
}
