// Package pkg provides the core libraries for waveforge photonic layout.
//
// # Overview
//
// waveforge builds photonic integrated-circuit layouts: parametric cells
// placed and connected by all-angle waveguide routes, described against a
// technology (PDK) definition. The pkg directory is organized into these
// areas:
//
//  1. [geometry] - Points, poses, polygons, and centerline extrusion
//  2. [tech] / [xsection] - PDK metadata: layer map, layer stack, cross-sections
//  3. [layout] / [cells] - Components, ports, references, the cell library
//  4. [route] - All-angle routing between poses, steps, and bundles
//  5. [netlist] - Connectivity extraction with DOT/SVG export
//  6. [simulate] - Solver job orchestration with cached results
//  7. [cache] / [db] - Content-addressed caching and fabrication metadata
//
// # Architecture
//
// The typical data flow through waveforge:
//
//	Tech file (TOML)
//	         ↓
//	    [tech] + [xsection] (layers, stack, cross-sections)
//	         ↓
//	    [layout] registry + [cells] (parametric components)
//	         ↓
//	    [route] (all-angle connections between ports)
//	         ↓
//	    [netlist] extraction, [simulate] handoff, component JSON output
//
// # Quick Start
//
// Build a cell and route between two of its ports:
//
//	pdk := tech.Generic()
//	xreg, _ := xsection.NewRegistry(pdk)
//	reg := layout.NewRegistry(nil)
//	_ = cells.RegisterAll(reg, xreg)
//
//	// 1. Build a parametric component
//	c, _ := reg.Build(ctx, "mzi", layout.Params{"delta_length": 40.0})
//
//	// 2. Route between poses (travel convention)
//	xs, _ := xreg.Get("strip")
//	rt, _ := route.Poses(geometry.At(0, 0, 0), geometry.At(50, 30, 90), xs, route.Options{})
//
//	// 3. Extract connectivity
//	nl, _ := netlist.Extract(c)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [geometry] - Euclidean primitives: points, poses with headings, polygons,
// bounding boxes, and path extrusion along straights, arcs, and Euler
// spirals.
//
// [tech] - Process metadata loaded from TOML tech files: the layer map
// (named GDS layer/datatype pairs), display views, and the vertical layer
// stack consumed by meshing.
//
// [xsection] - Waveguide cross-sections: core width and layer plus
// auxiliary sections, resolved against a tech's layer map.
//
// [layout] - Components, ports, and references. The cell registry memoizes
// builds by parameter hash and assigns deterministic component names.
//
// [cells] - The standard cell library: straights, circular and Euler bends,
// tapers, MMIs, ring couplers, and MZIs.
//
// [route] - All-angle routing. Connects two poses with bend-straight-bend
// solutions, honors waypoint steps, and routes port bundles with
// separation checks.
//
// [netlist] - Extracts instances and nets from a component's references and
// renders them as Graphviz DOT or SVG.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching with file, Redis, and null backends.
// Keys cover components, meshes, and simulation results.
//
// [db] - Fabrication metadata records (wafer, reticle, die, component,
// simulation) with file and MongoDB stores.
//
// [simulate] - Solver job orchestration: mesh, mode, and FDTD jobs handed
// to external engines with results cached by content hash.
//
// [observability] - Optional hooks for builds, solver runs, and cache
// operations without hard backend dependencies.
//
// [errors] - Coded errors shared across packages, mapped onto exit codes
// and HTTP statuses at the edges.
//
// [buildinfo] - Build-time version information injected via ldflags.
package pkg
