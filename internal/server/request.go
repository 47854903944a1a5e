package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Faultbox/texsphere/internal/config"
	"github.com/Faultbox/texsphere/internal/engine"
	"github.com/Faultbox/texsphere/internal/engine/renderer"
	"github.com/Faultbox/texsphere/internal/engine/scene"
)

// Request is a client's parameter update. Absent fields keep their current
// value, so a client may send only the slider that moved.
type Request struct {
	Distance *float32 `json:"distance,omitempty"`
	RotateX  *float32 `json:"rotate_x,omitempty"`
	RotateY  *float32 `json:"rotate_y,omitempty"`
	Radius   *float32 `json:"radius,omitempty"`
	Lat      *int     `json:"lat,omitempty"`
	Lon      *int     `json:"lon,omitempty"`
	Width    *int     `json:"width,omitempty"`
	Height   *int     `json:"height,omitempty"`
	Textured *bool    `json:"textured,omitempty"`
}

// view is the state one render is made from.
type view struct {
	params        scene.Params
	width, height int
	textured      bool
}

// apply overlays the set fields of r onto v.
func (r *Request) apply(v *view) {
	if r.Distance != nil {
		v.params.Orbit.Distance = *r.Distance
	}
	if r.RotateX != nil {
		v.params.Orbit.Pitch = *r.RotateX
	}
	if r.RotateY != nil {
		v.params.Orbit.Yaw = *r.RotateY
	}
	if r.Radius != nil {
		v.params.Radius = *r.Radius
	}
	if r.Lat != nil {
		v.params.LatDivisions = *r.Lat
	}
	if r.Lon != nil {
		v.params.LonDivisions = *r.Lon
	}
	if r.Width != nil {
		v.width = *r.Width
	}
	if r.Height != nil {
		v.height = *r.Height
	}
	if r.Textured != nil {
		v.textured = *r.Textured
	}
}

// validate checks what the scene does not: the viewport and tessellation
// limits of a server.
func (v *view) validate(maxViewport, maxDivisions int) error {
	const op = "server.render"
	if v.width <= 0 || v.width > maxViewport {
		return engine.Invalid(op, "width", v.width, fmt.Sprintf("must be in [1, %d]", maxViewport))
	}
	if v.height <= 0 || v.height > maxViewport {
		return engine.Invalid(op, "height", v.height, fmt.Sprintf("must be in [1, %d]", maxViewport))
	}
	if v.params.LatDivisions > maxDivisions {
		return engine.Invalid(op, "lat", v.params.LatDivisions, fmt.Sprintf("must be at most %d", maxDivisions))
	}
	if v.params.LonDivisions > maxDivisions {
		return engine.Invalid(op, "lon", v.params.LonDivisions, fmt.Sprintf("must be at most %d", maxDivisions))
	}
	return nil
}

// requestFromQuery builds a Request from URL query values with the same
// names as the JSON fields.
func requestFromQuery(q url.Values) (*Request, error) {
	var r Request
	floats := map[string]**float32{
		"distance": &r.Distance,
		"rotate_x": &r.RotateX,
		"rotate_y": &r.RotateY,
		"radius":   &r.Radius,
	}
	for name, dst := range floats {
		if !q.Has(name) {
			continue
		}
		v, err := strconv.ParseFloat(q.Get(name), 32)
		if err != nil {
			return nil, engine.Invalid("server.query", name, q.Get(name), "not a number")
		}
		f := float32(v)
		*dst = &f
	}

	ints := map[string]**int{
		"lat":    &r.Lat,
		"lon":    &r.Lon,
		"width":  &r.Width,
		"height": &r.Height,
	}
	for name, dst := range ints {
		if !q.Has(name) {
			continue
		}
		v, err := strconv.Atoi(q.Get(name))
		if err != nil {
			return nil, engine.Invalid("server.query", name, q.Get(name), "not an integer")
		}
		*dst = &v
	}
	return &r, nil
}

// outlineMessage carries a wireframe render.
type outlineMessage struct {
	Type        string         `json:"type"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Stroke      string         `json:"stroke"`
	StrokeWidth float32        `json:"stroke_width"`
	Outlines    [][6]float32   `json:"outlines"`
	Stats       renderer.Stats `json:"stats"`
}

func newOutlineMessage(out renderer.Output) outlineMessage {
	msg := outlineMessage{
		Type:        "outlines",
		Width:       out.Width,
		Height:      out.Height,
		Stroke:      config.FormatColor(out.Stroke),
		StrokeWidth: out.StrokeWidth,
		Outlines:    make([][6]float32, len(out.Outlines)),
		Stats:       out.Stats,
	}
	for i, o := range out.Outlines {
		msg.Outlines[i] = [6]float32{o.A.X, o.A.Y, o.B.X, o.B.Y, o.C.X, o.C.Y}
	}
	return msg
}

// errorMessage reports a rejected request; the connection stays open.
type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newErrorMessage(err error) errorMessage {
	return errorMessage{Type: "error", Error: err.Error()}
}
