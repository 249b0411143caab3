// Package chart renderiza a série de receita diária como PNG usando gonum/plot
package chart

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/pkg/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	lineColor       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	gridColor       = color.NRGBA{R: 0, G: 0, B: 0, A: 77} // alpha 0.3
	annotationColor = color.RGBA{R: 220, G: 20, B: 20, A: 255}
)

// PNGRenderer desenha o gráfico de linha com marcadores
type PNGRenderer struct{}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{}
}

func (r *PNGRenderer) Render(ctx context.Context, spec domain.ChartSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.DPI <= 0 || spec.WidthInches <= 0 || spec.HeightInches <= 0 {
		return nil, fmt.Errorf("chart: dimensões inválidas (%vx%v in, %d dpi)", spec.WidthInches, spec.HeightInches, spec.DPI)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	p.X.Tick.Marker = plot.TimeTicks{Format: time.DateOnly}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Tick.Marker = currencyTicks{}

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	// Série vazia: o gráfico sai apenas com eixos e título
	if len(spec.Series) > 0 {
		pts := make(plotter.XYs, len(spec.Series))
		for i, row := range spec.Series {
			pts[i].X = timeToX(row.SaleDate)
			pts[i].Y = row.TotalRevenue.InexactFloat64()
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("chart: erro ao criar a linha: %w", err)
		}
		line.Width = vg.Points(1)
		line.Color = lineColor
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(1.5)
		points.Color = lineColor
		p.Add(line, points)
	}

	if spec.Annotation != nil {
		if err := addAnnotation(p, spec.Annotation); err != nil {
			return nil, err
		}
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(spec.WidthInches)*vg.Inch, vg.Length(spec.HeightInches)*vg.Inch),
		vgimg.UseDPI(spec.DPI),
	)
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: erro ao codificar PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// addAnnotation desenha uma seta do texto (deslocado OffsetDays à direita) até o ponto
func addAnnotation(p *plot.Plot, a *domain.ChartAnnotation) error {
	value := a.Value.InexactFloat64()
	tip := plotter.XY{X: timeToX(a.Date), Y: value}
	tail := plotter.XY{X: timeToX(a.Date.AddDate(0, 0, a.OffsetDays)), Y: value}

	shaft, err := plotter.NewLine(plotter.XYs{tail, tip})
	if err != nil {
		return fmt.Errorf("chart: erro ao criar a seta: %w", err)
	}
	shaft.Color = annotationColor
	shaft.Width = vg.Points(1)

	head, err := plotter.NewScatter(plotter.XYs{tip})
	if err != nil {
		return fmt.Errorf("chart: erro ao criar a ponta da seta: %w", err)
	}
	head.GlyphStyle = draw.GlyphStyle{
		Color:  annotationColor,
		Radius: vg.Points(3),
		Shape:  arrowHeadGlyph{},
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{tail},
		Labels: []string{a.Label},
	})
	if err != nil {
		return fmt.Errorf("chart: erro ao criar o texto da anotação: %w", err)
	}
	labels.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(-4)}

	p.Add(shaft, head, labels)
	return nil
}

// arrowHeadGlyph é um triângulo com a ponta no ponto e a base à direita
type arrowHeadGlyph struct{}

func (arrowHeadGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius

	var path vg.Path
	path.Move(pt)
	path.Line(vg.Point{X: pt.X + 2*r, Y: pt.Y + r})
	path.Line(vg.Point{X: pt.X + 2*r, Y: pt.Y - r})
	path.Close()
	c.Fill(path)
}

// currencyTicks formata os rótulos do eixo Y como moeda
type currencyTicks struct{}

func (currencyTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = utils.FormatUSDGrouped(decimal.NewFromFloat(ticks[i].Value), 0)
	}
	return ticks
}

func timeToX(t time.Time) float64 {
	return float64(utils.TruncateToDate(t).Unix())
}
