// Package chart renders report images as PNG via go-chart.
package chart

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/avikothari/bling/internal/model"
)

// Size pins the pixel dimensions of a rendered chart.
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches the config defaults.
var DefaultSize = Size{Width: 900, Height: 600}

// Pie renders a category-share pie chart as PNG. Slice labels carry the
// share percentage. Callers pass breakdown slices that are never empty;
// a zero-spend month arrives as a single "No data" placeholder slice.
func Pie(w io.Writer, title string, slices []model.PieSlice, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}

	var total float64
	for _, s := range slices {
		total += s.Value
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		label := s.Label
		if total > 0 {
			label = fmt.Sprintf("%s %.1f%%", s.Label, s.Value/total*100)
		}
		values = append(values, chart.Value{Value: s.Value, Label: label})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}
