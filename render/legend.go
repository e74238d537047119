package render

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type legendEntry struct {
	label  string
	style  chart.Style
	marker bool // draw a dot instead of a line sample
}

const (
	legendPadding = 5
	legendGap     = 5
	legendMargin  = 8
	legendSample  = 25
)

// lowerLeftLegend draws the legend boxed in the lower-left corner of the
// plot area. Entries appear in the order they were added.
func lowerLeftLegend(entries []legendEntry, fontSize float64) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if len(entries) == 0 {
			return
		}

		style := defaults.InheritFrom(chart.Style{
			FillColor:   drawing.ColorWhite,
			FontColor:   drawing.ColorBlack,
			FontSize:    fontSize,
			StrokeColor: drawing.ColorFromHex("b0b0b0"),
			StrokeWidth: 1,
		})

		r.SetFont(style.GetFont())
		r.SetFontColor(style.GetFontColor())
		r.SetFontSize(style.GetFontSize())

		textHeight, textWidth := 0, 0
		for _, e := range entries {
			tb := r.MeasureText(e.label)
			textHeight = max(textHeight, tb.Height())
			textWidth = max(textWidth, tb.Width())
		}

		height := 2*legendPadding + len(entries)*textHeight + (len(entries)-1)*legendGap
		width := 2*legendPadding + legendSample + legendGap + textWidth
		box := chart.Box{
			Left:   cb.Left + legendMargin,
			Bottom: cb.Bottom - legendMargin,
		}
		box.Top = box.Bottom - height
		box.Right = box.Left + width

		chart.Draw.Box(r, box, style)

		for i, e := range entries {
			baseline := box.Top + legendPadding + (i+1)*textHeight + i*legendGap
			mid := baseline - textHeight/2
			sx := box.Left + legendPadding

			r.ResetStyle()
			style.GetTextOptions().WriteTextOptionsToRenderer(r)
			r.Text(e.label, sx+legendSample+legendGap, baseline)

			r.ResetStyle()
			if e.marker {
				r.SetFillColor(e.style.DotColor)
				r.SetStrokeColor(e.style.DotColor)
				r.SetStrokeWidth(1)
				r.Circle(e.style.DotWidth, sx+legendSample/2, mid)
				r.FillStroke()
				continue
			}
			e.style.GetStrokeOptions().WriteDrawingOptionsToRenderer(r)
			r.MoveTo(sx, mid)
			r.LineTo(sx+legendSample, mid)
			r.Stroke()
		}
	}
}
