package charts

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"soccer-science/stats"
)

const (
	radarSize   = 800
	radarRadius = 280
	radarRings  = 4
)

type polygon struct {
	name string
	// values holds one mean per radar axis, NaN when absent.
	values []float64
	color  drawing.Color
}

// radarGeometry maps a metric value on an axis to canvas coordinates. The
// radial scale runs from low at the centre to high on the outer ring.
type radarGeometry struct {
	cx, cy    int
	axes      int
	low, high float64
}

type vertex struct {
	axis int
	x, y int
}

func (g radarGeometry) point(axis int, frac float64) (int, int) {
	angle := -math.Pi/2 + 2*math.Pi*float64(axis)/float64(g.axes)
	return g.cx + int(math.Round(math.Cos(angle)*frac*radarRadius)),
		g.cy + int(math.Round(math.Sin(angle)*frac*radarRadius))
}

// vertices places the present values only. An absent axis has no vertex.
func (g radarGeometry) vertices(values []float64) []vertex {
	var out []vertex
	for a, v := range values {
		if math.IsNaN(v) {
			continue
		}
		x, y := g.point(a, (v-g.low)/(g.high-g.low))
		out = append(out, vertex{axis: a, x: x, y: y})
	}
	return out
}

// radarScale picks the radial range over every present value. Negative
// means extend the scale below zero instead of being clamped.
func radarScale(polys []polygon) (low, high float64, ok bool) {
	for _, p := range polys {
		for _, v := range p.values {
			if math.IsNaN(v) {
				continue
			}
			ok = true
			low = math.Min(low, v)
			high = math.Max(high, v)
		}
	}
	if low < 0 {
		low = -niceMax(-low)
	}
	return low, niceMax(high), ok
}

// Radar draws the team comparison as a filled polygon per team on the five
// radar axes, with the league average underneath. An absent mean leaves its
// axis out of the polygon and the legend names the missing metrics.
func Radar(res stats.RadarResult) ([]byte, error) {
	polys := []polygon{{name: "League Average", values: radarValues(res.LeagueAverage), color: baseline}}
	for i, t := range res.Teams {
		polys = append(polys, polygon{name: t.Team, values: radarValues(t.Averages), color: TeamColor(i)})
	}
	low, high, ok := radarScale(polys)
	if !ok {
		return nil, ErrNothingToPlot
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r, err := chart.SVG(radarSize, radarSize)
	if err != nil {
		return nil, err
	}
	r.SetFont(font)
	n := len(stats.RadarMetrics)
	g := radarGeometry{cx: radarSize / 2, cy: radarSize/2 + 30, axes: n, low: low, high: high}

	// grid
	r.SetStrokeColor(chart.ColorLightGray)
	r.SetStrokeWidth(1)
	r.SetFontColor(chart.ColorAlternateGray)
	r.SetFontSize(10)
	for ring := 1; ring <= radarRings; ring++ {
		frac := float64(ring) / radarRings
		for a := 0; a <= n; a++ {
			x, y := g.point(a%n, frac)
			if a == 0 {
				r.MoveTo(x, y)
			} else {
				r.LineTo(x, y)
			}
		}
		r.Stroke()
		x, y := g.point(0, frac)
		r.Text(trimFloat(low+(high-low)*frac), x+4, y)
	}
	r.SetFontSize(12)
	r.SetFontColor(drawing.ColorBlack)
	for a, m := range stats.RadarMetrics {
		r.SetStrokeColor(chart.ColorLightGray)
		r.MoveTo(g.cx, g.cy)
		x, y := g.point(a, 1)
		r.LineTo(x, y)
		r.Stroke()
		lx, ly := g.point(a, 1.12)
		label := m.RadarLabel()
		box := r.MeasureText(label)
		r.Text(escape(label), lx-box.Width()/2, ly+box.Height()/2)
	}

	for _, p := range polys {
		vs := g.vertices(p.values)
		if len(vs) == 0 {
			continue
		}
		r.SetFillColor(p.color.WithAlpha(60))
		r.SetStrokeColor(p.color)
		r.SetStrokeWidth(2)
		r.MoveTo(vs[0].x, vs[0].y)
		for _, v := range vs[1:] {
			r.LineTo(v.x, v.y)
		}
		r.Close()
		r.FillStroke()
		r.SetFillColor(p.color)
		for _, v := range vs {
			r.Circle(4, v.x, v.y)
			r.Fill()
		}
	}

	// legend
	r.SetFontSize(12)
	for i, p := range polys {
		y := 70 + i*20
		r.SetFillColor(p.color)
		r.SetStrokeColor(p.color)
		r.MoveTo(20, y-10)
		r.LineTo(32, y-10)
		r.LineTo(32, y+2)
		r.LineTo(20, y+2)
		r.Close()
		r.FillStroke()
		r.SetFontColor(drawing.ColorBlack)
		r.Text(escape(legendName(p)), 40, y)
	}
	title := fmt.Sprintf("Comparison of Selected Teams in %s - %s", res.Season, res.League)
	r.SetFontSize(16)
	box := r.MeasureText(title)
	r.Text(escape(title), radarSize/2-box.Width()/2, 20+box.Height())

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render radar: %w", err)
	}
	return buf.Bytes(), nil
}

func radarValues(a stats.Averages) []float64 {
	out := make([]float64, len(stats.RadarMetrics))
	for i, m := range stats.RadarMetrics {
		out[i] = math.NaN()
		if v, ok := a.Get(m); ok {
			out[i] = v
		}
	}
	return out
}

// legendName appends the metrics a polygon could not place, e.g.
// "Lyon (no xG)".
func legendName(p polygon) string {
	var missing []string
	for i, v := range p.values {
		if math.IsNaN(v) {
			missing = append(missing, stats.RadarMetrics[i].RadarLabel())
		}
	}
	if len(missing) == 0 {
		return p.name
	}
	return p.name + " (no " + strings.Join(missing, ", ") + ")"
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%.2g", v)
}
