package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

func findApplyButton(t *testing.T, obj fyne.CanvasObject) *widget.Button {
	t.Helper()
	if b := findButton(obj, "Apply"); b != nil {
		return b
	}
	t.Fatal("Apply button not found")
	return nil
}

func findButton(obj fyne.CanvasObject, text string) *widget.Button {
	switch o := obj.(type) {
	case *widget.Button:
		if o.Text == text {
			return o
		}
	case *fyne.Container:
		for _, child := range o.Objects {
			if b := findButton(child, text); b != nil {
				return b
			}
		}
	}
	return nil
}
