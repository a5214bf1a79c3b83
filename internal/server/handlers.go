package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/layout"
	"github.com/waveforge/waveforge/pkg/route"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "tech": s.cfg.Tech.Name})
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	type layerInfo struct {
		Name     string `json:"name"`
		Layer    int    `json:"layer"`
		Datatype int    `json:"datatype"`
	}
	var out []layerInfo
	for _, name := range s.cfg.Tech.Layers.Names() {
		l := s.cfg.Tech.Layers[name]
		out = append(out, layerInfo{Name: name, Layer: l.Layer, Datatype: l.Datatype})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayerStack(w http.ResponseWriter, r *http.Request) {
	type levelInfo struct {
		Name      string  `json:"name"`
		Layer     string  `json:"layer"`
		ZMin      float64 `json:"zmin"`
		ZMax      float64 `json:"zmax"`
		Thickness float64 `json:"thickness"`
		Material  string  `json:"material"`
	}
	stack := s.cfg.Tech.Stack
	out := make([]levelInfo, 0, len(stack))
	for _, name := range stack.Names() {
		lvl := stack[name]
		out = append(out, levelInfo{
			Name:      name,
			Layer:     lvl.Layer.String(),
			ZMin:      lvl.ZMin,
			ZMax:      lvl.ZMax(),
			Thickness: lvl.Thickness,
			Material:  lvl.Material,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCrossSections(w http.ResponseWriter, r *http.Request) {
	names := s.cfg.XS.Names()
	out := make([]any, 0, len(names))
	for _, name := range names {
		xs, err := s.cfg.XS.Get(name)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, xs)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCells(w http.ResponseWriter, r *http.Request) {
	type cellInfo struct {
		Name     string        `json:"name"`
		Defaults layout.Params `json:"defaults"`
	}
	names := s.cfg.Cells.Names()
	out := make([]cellInfo, 0, len(names))
	for _, name := range names {
		defaults, err := s.cfg.Cells.Defaults(name)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, cellInfo{Name: name, Defaults: defaults})
	}
	writeJSON(w, http.StatusOK, out)
}

// buildCellResponse summarizes a built component without shipping the
// full polygon set.
type buildCellResponse struct {
	Name         string        `json:"name"`
	Bounds       geometry.Box  `json:"bounds"`
	Ports        []layout.Port `json:"ports"`
	PolygonCount int           `json:"polygon_count"`
}

func (s *Server) handleBuildCell(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var params layout.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && err != io.EOF {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding build parameters"))
		return
	}

	c, err := s.cfg.Cells.Build(r.Context(), name, params)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := buildCellResponse{
		Name:         c.Name,
		Bounds:       c.Bounds(),
		PolygonCount: c.PolygonCount(),
	}
	for _, pn := range c.PortNames() {
		p, _ := c.Port(pn)
		resp.Ports = append(resp.Ports, p)
	}
	sort.Slice(resp.Ports, func(i, j int) bool { return resp.Ports[i].Name < resp.Ports[j].Name })
	writeJSON(w, http.StatusOK, resp)
}

// routeRequest is the POST /api/route body. Poses use travel convention:
// from.orientation is the departure heading, to.orientation the arrival
// heading.
type routeRequest struct {
	From         poseJSON     `json:"from"`
	To           poseJSON     `json:"to"`
	CrossSection string       `json:"cross_section"`
	Steps        []route.Step `json:"steps,omitempty"`
	MinStraight  float64      `json:"min_straight,omitempty"`
}

type poseJSON struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Orientation float64 `json:"orientation"`
}

type routeResponse struct {
	Elements []route.Element  `json:"elements"`
	Length   float64          `json:"length"`
	NBends   int              `json:"n_bends"`
	Points   []geometry.Point `json:"points"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding route request"))
		return
	}
	if req.CrossSection == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "cross_section is required"))
		return
	}
	xs, err := s.cfg.XS.Get(req.CrossSection)
	if err != nil {
		writeError(w, err)
		return
	}

	rt, err := route.Poses(
		geometry.At(req.From.X, req.From.Y, req.From.Orientation),
		geometry.At(req.To.X, req.To.Y, req.To.Orientation),
		xs,
		route.Options{Steps: req.Steps, MinStraight: req.MinStraight},
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, routeResponse{
		Elements: rt.Elements,
		Length:   rt.Length,
		NBends:   rt.NBends,
		Points:   rt.Points(),
	})
}
