package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

// ChartStyle defines the layout of the summary chart
type ChartStyle struct {
	Width      int
	Padding    int
	RowHeight  int
	LabelWidth int
	Background [3]float64
	BarColors  [][3]float64
}

// ChartRenderer draws a dataset summary as a PNG bar chart
type ChartRenderer struct {
	style ChartStyle
}

// NewChartRenderer creates a renderer with the default style
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{
		style: ChartStyle{
			Width:      640,
			Padding:    20,
			RowHeight:  26,
			LabelWidth: 130,
			Background: [3]float64{0.12, 0.13, 0.15},
			BarColors: [][3]float64{
				{0.35, 0.55, 0.95},
				{0.95, 0.55, 0.25},
			},
		},
	}
}

type chartPanel struct {
	title string
	bars  []Count
}

// Render draws the churn reason and policy type distributions and returns PNG bytes
func (r *ChartRenderer) Render(s Summary) ([]byte, error) {
	start := time.Now()

	titleFace, err := loadFont(gobold.TTF, 18)
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}
	textFace, err := loadFont(gomono.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load text font: %w", err)
	}

	panels := []chartPanel{
		{title: fmt.Sprintf("Churn reasons (%d of %d churned)", s.Churned, s.Customers), bars: s.ChurnReasons},
		{title: "Policy types", bars: s.PolicyTypes},
	}

	st := r.style
	height := st.Padding*2 + 40
	for _, p := range panels {
		height += 36 + len(p.bars)*st.RowHeight
	}

	dc := gg.NewContext(st.Width, height)
	dc.SetRGB(st.Background[0], st.Background[1], st.Background[2])
	dc.Clear()

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	drawSharpText(dc, "Churn dataset summary", float64(st.Padding), float64(st.Padding)+18)

	y := float64(st.Padding) + 40
	for i, p := range panels {
		color := st.BarColors[i%len(st.BarColors)]
		y = r.drawPanel(dc, p, color, titleFace, textFace, y)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}

	log.WithFields(log.Fields{
		"duration": time.Since(start),
		"bytes":    buf.Len(),
	}).Debug("Rendered summary chart")

	return buf.Bytes(), nil
}

func (r *ChartRenderer) drawPanel(dc *gg.Context, p chartPanel, color [3]float64, titleFace, textFace font.Face, y float64) float64 {
	st := r.style

	dc.SetFontFace(titleFace)
	dc.SetRGB(0.85, 0.85, 0.85)
	drawSharpText(dc, p.title, float64(st.Padding), y+16)
	y += 28

	maxCount := 0
	for _, b := range p.bars {
		maxCount = max(maxCount, b.Count)
	}

	barX := float64(st.Padding + st.LabelWidth)
	barSpace := float64(st.Width-st.Padding*2-st.LabelWidth) - 60

	dc.SetFontFace(textFace)
	for _, b := range p.bars {
		dc.SetRGB(0.9, 0.9, 0.9)
		drawSharpText(dc, b.Label, float64(st.Padding), y+float64(st.RowHeight)/2+4)

		width := 0.0
		if maxCount > 0 {
			width = barSpace * float64(b.Count) / float64(maxCount)
		}
		dc.SetRGB(color[0], color[1], color[2])
		dc.DrawRectangle(barX, y+4, width, float64(st.RowHeight-8))
		dc.Fill()

		dc.SetRGB(0.9, 0.9, 0.9)
		drawSharpText(dc, fmt.Sprintf("%d", b.Count), barX+width+8, y+float64(st.RowHeight)/2+4)

		y += float64(st.RowHeight)
	}
	return y + 8
}

// WriteChart renders the summary chart to path
func WriteChart(path string, s Summary) error {
	png, err := NewChartRenderer().Render(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	}), nil
}
