package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/texsphere/internal/engine/renderer"
)

// WriteSVG writes the outlines of a wireframe render as closed, unfilled
// SVG polygons on a canvas the size of the viewport.
func WriteSVG(w io.Writer, out renderer.Output) error {
	if out.Width <= 0 || out.Height <= 0 {
		return ErrEmptyOutput
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		out.Width, out.Height, out.Width, out.Height)

	s := out.Stroke
	fmt.Fprintf(bw, `<g fill="none" stroke="#%02x%02x%02x" stroke-opacity="%s" stroke-width="%s" stroke-linejoin="round">`+"\n",
		s.R, s.G, s.B, coord(float32(s.A)/255), coord(out.StrokeWidth))

	for _, o := range out.Outlines {
		fmt.Fprintf(bw, `<polygon points="%s,%s %s,%s %s,%s"/>`+"\n",
			coord(o.A.X), coord(o.A.Y),
			coord(o.B.X), coord(o.B.Y),
			coord(o.C.X), coord(o.C.Y))
	}

	bw.WriteString("</g>\n</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}
	return nil
}

// coord formats v in the shortest form that round-trips as float32.
func coord(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
