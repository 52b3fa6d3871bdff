package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/growthlab/internal/growth"
)

// SVGOptions controls PathToSVG output.
type SVGOptions struct {
	Width       int
	Height      int
	StrokeColor string
	// SteadyState draws a dashed reference line at k* when positive.
	SteadyState float64
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 640, Height: 320, StrokeColor: "#00ccff"}
}

// PathToSVG renders a capital path as an SVG polyline with t on the x axis.
// Paths with fewer than two points render as an empty string.
func PathToSVG(path growth.Path, opts SVGOptions) string {
	if len(path) < 2 || !path.IsValid() {
		return ""
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultSVGOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.StrokeColor == "" {
		opts.StrokeColor = DefaultSVGOptions().StrokeColor
	}

	minY, maxY := path[0], path[0]
	for _, k := range path {
		minY = min(minY, k)
		maxY = max(maxY, k)
	}
	if opts.SteadyState > 0 {
		minY = min(minY, opts.SteadyState)
		maxY = max(maxY, opts.SteadyState)
	}

	// Pad the value range by 10% on each side.
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	w, h := float64(opts.Width), float64(opts.Height)
	last := float64(len(path) - 1)
	toY := func(k float64) float64 {
		return h - (k-minY)/rangeY*h
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height)

	if opts.SteadyState > 0 {
		y := toY(opts.SteadyState)
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ffcc00" stroke-dasharray="6,4"/>
`, y, w, y)
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.StrokeColor)
	for t, k := range path {
		x := float64(t) / last * w
		if t == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, toY(k))
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, toY(k))
		}
	}
	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}

// WriteSVG writes PathToSVG output, failing for paths it cannot draw.
func WriteSVG(out io.Writer, path growth.Path, opts SVGOptions) error {
	svg := PathToSVG(path, opts)
	if svg == "" {
		return fmt.Errorf("svg: need at least two finite points, got %d", len(path))
	}
	_, err := io.WriteString(out, svg)
	return err
}

func SaveSVG(filePath string, path growth.Path, opts SVGOptions) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteSVG(file, path, opts); err != nil {
		return err
	}
	return file.Close()
}
