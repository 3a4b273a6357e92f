// Reference drawings for presets whose photos are not installed
package io

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// renderFlower draws a rosette on green. Mats are BGR; gocv maps color.RGBA
// onto that order when drawing.
func renderFlower(size int) gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(120, 170, 90, 0), size, size, gocv.MatTypeCV8UC3)

	center := image.Pt(size/2, size/2)
	petal := color.RGBA{R: 225, G: 90, B: 150, A: 255}
	edge := color.RGBA{R: 150, G: 40, B: 100, A: 255}
	reach := float64(size) / 4
	axes := image.Pt(size/5, size/11)
	for i := 0; i < 8; i++ {
		angle := float64(i) * 45
		rad := angle * math.Pi / 180
		at := image.Pt(center.X+int(reach*math.Cos(rad)), center.Y+int(reach*math.Sin(rad)))
		gocv.Ellipse(&mat, at, axes, angle, 0, 360, petal, -1)
		gocv.Ellipse(&mat, at, axes, angle, 0, 360, edge, 2)
	}
	gocv.Circle(&mat, center, size/9, color.RGBA{R: 245, G: 200, B: 40, A: 255}, -1)
	gocv.Circle(&mat, center, size/9, color.RGBA{R: 180, G: 120, B: 20, A: 255}, 2)
	return mat
}

func renderDog(size int) gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(215, 190, 150, 0), size, size, gocv.MatTypeCV8UC3)

	fur := color.RGBA{R: 170, G: 110, B: 60, A: 255}
	ear := color.RGBA{R: 110, G: 65, B: 35, A: 255}
	dark := color.RGBA{R: 30, G: 25, B: 20, A: 255}
	cx, cy := size/2, size/2+size/16

	gocv.Ellipse(&mat, image.Pt(cx-size/4, cy-size/8), image.Pt(size/10, size/5), 20, 0, 360, ear, -1)
	gocv.Ellipse(&mat, image.Pt(cx+size/4, cy-size/8), image.Pt(size/10, size/5), -20, 0, 360, ear, -1)
	gocv.Circle(&mat, image.Pt(cx, cy), size/4, fur, -1)
	gocv.Ellipse(&mat, image.Pt(cx, cy+size/10), image.Pt(size/8, size/12), 0, 0, 360,
		color.RGBA{R: 230, G: 200, B: 160, A: 255}, -1)
	gocv.Circle(&mat, image.Pt(cx-size/10, cy-size/16), size/28, dark, -1)
	gocv.Circle(&mat, image.Pt(cx+size/10, cy-size/16), size/28, dark, -1)
	gocv.Ellipse(&mat, image.Pt(cx, cy+size/14), image.Pt(size/24, size/36), 0, 0, 360, dark, -1)
	return mat
}
