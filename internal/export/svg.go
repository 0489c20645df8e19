package export

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
)

// GridToSVG draws every live link of g as a line on a canvas the size of
// space, scaled by scale.
func GridToSVG(g *cloth.Grid, space cloth.Canvas, scale float64, strokeColor string) string {
	if g == nil || scale <= 0 {
		return ""
	}

	width := space.Width * scale
	height := space.Height * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="%s" stroke-width="%.2f">
`, width, height, width, height, strokeColor, 0.5*scale))

	g.Segments(func(a, b mgl64.Vec2) {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, a[0]*scale, a[1]*scale, b[0]*scale, b[1]*scale))
	})

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots a sample series as a polyline.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	step := float64(width) / float64(len(series)-1)
	for i, v := range series {
		x := float64(i) * step
		y := float64(height) - (v-lo)/span*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
