package hohmann

import (
	"fmt"
	"math"
	"strings"
)

// SVG plot constants
const (
	svgWidth        = 600
	svgHeight       = 600
	plotMargin      = 50
	plotCenterX     = svgWidth / 2
	plotCenterY     = svgHeight / 2
	plotRadius      = (svgWidth / 2) - plotMargin
	labelFontSize   = 12
	backgroundColor = "black"
	orbitColor      = "dimgray"
	transferColor   = "white"
	pathStrokeWidth = "2"
	pointRadius     = 5.0
	labelOffset     = 8.0
)

// toPlot converts a heliocentric point to SVG coordinates; y points up on the plot.
func toPlot(p Point, scale float64) (x, y float64) {
	return plotCenterX + p.X*scale, plotCenterY - p.Y*scale
}

// GenerateSVG renders the orbits, the transfer arc and the final positions as an SVG document.
func (t Trajectory) GenerateSVG() string {
	frames := t.Frames()
	if len(frames) < 2 {
		return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg"><rect width="100%%" height="100%%" fill="%s"/><text x="50" y="50" fill="white">Not enough frames for a trajectory plot.</text></svg>`, svgWidth, svgHeight, backgroundColor)
	}
	rMax := math.Max(t.Departure.OrbitRadius(), t.Arrival.OrbitRadius())
	rMax = math.Max(rMax, t.Transfer.Apoapsis())
	scale := plotRadius / rMax

	var svgBuilder strings.Builder
	svgBuilder.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, svgWidth, svgHeight))
	svgBuilder.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`, backgroundColor))

	// Planet orbits
	for _, body := range []CelestialObject{t.Departure, t.Arrival} {
		svgBuilder.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%f" stroke="%s" stroke-width="1" fill="none" stroke-dasharray="4,4"/>`, plotCenterX, plotCenterY, body.OrbitRadius()*scale, orbitColor))
	}

	// Sun
	svgBuilder.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%f" fill="%s"/>`, plotCenterX, plotCenterY, 2*pointRadius, Sun.Color))
	svgBuilder.WriteString(fmt.Sprintf(`<text x="%f" y="%f" fill="%s" font-size="%d">%s</text>`, plotCenterX+2*pointRadius+labelOffset, plotCenterY-labelOffset, Sun.Color, labelFontSize, Sun.Name))

	// Transfer arc
	pts := make([]string, len(frames))
	for i, f := range frames {
		x, y := toPlot(f.Spacecraft.R, scale)
		pts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
	}
	svgBuilder.WriteString(fmt.Sprintf(`<polyline points="%s" stroke="%s" stroke-width="%s" fill="none"/>`, strings.Join(pts, " "), transferColor, pathStrokeWidth))

	// Final positions
	final := frames[len(frames)-1]
	for _, item := range []struct {
		name, color string
		p           Point
	}{
		{t.Departure.Name, t.Departure.Color, final.Departure.R},
		{t.Arrival.Name, t.Arrival.Color, final.Arrival.R},
		{"Spacecraft", transferColor, final.Spacecraft.R},
	} {
		x, y := toPlot(item.p, scale)
		svgBuilder.WriteString(fmt.Sprintf(`<circle cx="%f" cy="%f" r="%f" fill="%s"/>`, x, y, pointRadius, item.color))
		svgBuilder.WriteString(fmt.Sprintf(`<text x="%f" y="%f" fill="%s" font-size="%d">%s</text>`, x+labelOffset, y-labelOffset, item.color, labelFontSize, item.name))
	}

	svgBuilder.WriteString(fmt.Sprintf(`<text x="10" y="%d" fill="white" font-size="%d">%s → %s, %.1f days</text>`, svgHeight-10, labelFontSize, t.Departure.Name, t.Arrival.Name, final.Days()))
	svgBuilder.WriteString(`</svg>`)
	return svgBuilder.String()
}
