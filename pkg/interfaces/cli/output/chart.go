package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/vsinha/planboard/pkg/application/dto"
)

// StockChart draws a planning board as an SVG: production bars per week with
// the natural and post-intervention stock curves on top
type StockChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MinValue     float64
	MaxValue     float64
}

// NewStockChart sizes the chart and its value range for board
func NewStockChart(board *dto.PlanningBoard) *StockChart {
	sc := &StockChart{
		Width:        900,
		Height:       420,
		MarginLeft:   80,
		MarginTop:    60,
		MarginRight:  180,
		MarginBottom: 60,
	}

	for _, slot := range board.Weeks {
		for _, v := range []float64{
			slot.NaturalStock,
			slot.PostInterventionStock,
			slot.ExistingProduction + slot.CorrectiveProduction,
		} {
			sc.MinValue = math.Min(sc.MinValue, v)
			sc.MaxValue = math.Max(sc.MaxValue, v)
		}
	}
	if sc.MaxValue == sc.MinValue {
		sc.MaxValue = sc.MinValue + 1
	}

	// 10% headroom
	span := sc.MaxValue - sc.MinValue
	sc.MaxValue += span * 0.1
	if sc.MinValue < 0 {
		sc.MinValue -= span * 0.1
	}
	return sc
}

// GenerateSVG creates an SVG representation of the board
func (sc *StockChart) GenerateSVG(board *dto.PlanningBoard) string {
	if len(board.Weeks) == 0 {
		return sc.generateEmptyChart()
	}

	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, sc.Width, sc.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.label { font-family: Arial, sans-serif; font-size: 11px; fill: #333; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.zero-line { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`</style></defs>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, sc.Width, sc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title">Planning board %s (%d weeks)</text>`,
		sc.MarginLeft, board.Material, board.HorizonWeeks))

	sc.drawAxes(&svg, len(board.Weeks))
	sc.drawBars(&svg, board)

	natural := make([]float64, len(board.Weeks))
	projected := make([]float64, len(board.Weeks))
	for i, slot := range board.Weeks {
		natural[i] = slot.NaturalStock
		projected[i] = slot.PostInterventionStock
	}
	sc.drawLine(&svg, natural, "#E53935", "6,4")
	sc.drawLine(&svg, projected, "#1E88E5", "")

	sc.drawLegend(&svg)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (sc *StockChart) plotWidth() int {
	return sc.Width - sc.MarginLeft - sc.MarginRight
}

func (sc *StockChart) plotHeight() int {
	return sc.Height - sc.MarginTop - sc.MarginBottom
}

// y maps a stock value to its vertical pixel position
func (sc *StockChart) y(v float64) int {
	ratio := (v - sc.MinValue) / (sc.MaxValue - sc.MinValue)
	return sc.MarginTop + sc.plotHeight() - int(ratio*float64(sc.plotHeight()))
}

// x returns the center of week i's column
func (sc *StockChart) x(i, weeks int) int {
	column := sc.plotWidth() / weeks
	return sc.MarginLeft + i*column + column/2
}

func (sc *StockChart) drawAxes(svg *strings.Builder, weeks int) {
	for i := 0; i < weeks; i++ {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="label" text-anchor="middle">W+%d</text>`,
			sc.x(i, weeks), sc.Height-sc.MarginBottom+20, i+1))
	}

	for _, v := range []float64{sc.MinValue, (sc.MinValue + sc.MaxValue) / 2, sc.MaxValue} {
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			sc.MarginLeft, sc.y(v), sc.Width-sc.MarginRight, sc.y(v)))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="label" text-anchor="end">%.0f</text>`,
			sc.MarginLeft-8, sc.y(v)+4, v))
	}

	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="zero-line"/>`,
		sc.MarginLeft, sc.y(0), sc.Width-sc.MarginRight, sc.y(0)))
}

// drawBars stacks corrective production on top of existing production
func (sc *StockChart) drawBars(svg *strings.Builder, board *dto.PlanningBoard) {
	weeks := len(board.Weeks)
	barWidth := sc.plotWidth() / weeks / 2
	if barWidth < 2 {
		barWidth = 2
	}

	for i, slot := range board.Weeks {
		left := sc.x(i, weeks) - barWidth/2
		base := 0.0
		for _, part := range []struct {
			value float64
			color string
			label string
		}{
			{slot.ExistingProduction, "#43A047", "existing"},
			{slot.CorrectiveProduction, "#FB8C00", "corrective"},
		} {
			if part.value <= 0 {
				continue
			}
			top := sc.y(base + part.value)
			svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"><title>%s %s: %.1f</title></rect>`,
				left, top, barWidth, sc.y(base)-top, part.color, slot.Label, part.label, part.value))
			base += part.value
		}
	}
}

func (sc *StockChart) drawLine(svg *strings.Builder, values []float64, color, dash string) {
	points := make([]string, len(values))
	for i, v := range values {
		points[i] = fmt.Sprintf("%d,%d", sc.x(i, len(values)), sc.y(v))
	}

	svg.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="2"`, strings.Join(points, " "), color))
	if dash != "" {
		svg.WriteString(fmt.Sprintf(` stroke-dasharray="%s"`, dash))
	}
	svg.WriteString(`/>`)
}

func (sc *StockChart) drawLegend(svg *strings.Builder) {
	legendX := sc.Width - sc.MarginRight + 20
	legendY := sc.MarginTop

	items := []struct {
		color string
		label string
	}{
		{"#43A047", "Existing orders"},
		{"#FB8C00", "Corrective order"},
		{"#E53935", "Natural stock"},
		{"#1E88E5", "Projected stock"},
	}

	for i, item := range items {
		itemY := legendY + i*18
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="8" fill="%s"/>`,
			legendX, itemY, item.color))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="label">%s</text>`,
			legendX+18, itemY+8, item.label))
	}
}

func (sc *StockChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">No weeks to plot</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, sc.Width, sc.Height, sc.Width, sc.Height, sc.Width/2, sc.Height/2)
}
