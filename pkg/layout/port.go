package layout

import (
	"fmt"
	"sort"

	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/tech"
)

// Port is a connection point on a component: a position, the outward
// heading, and the transverse geometry needed to mate waveguides.
type Port struct {
	Name         string         `json:"name"`
	Center       geometry.Point `json:"center"`
	Orientation  float64        `json:"orientation"` // degrees, outward
	Width        float64        `json:"width"`       // um
	Layer        tech.Layer     `json:"layer"`
	CrossSection string         `json:"cross_section,omitempty"`
}

// Pose returns the port as a pose (position plus outward heading).
func (p Port) Pose() geometry.Pose {
	return geometry.Pose{Position: p.Center, Orientation: geometry.NormalizeAngle(p.Orientation)}
}

// Facing reports whether two ports face each other: opposite headings
// within tol degrees. It says nothing about their positions.
func (p Port) Facing(q Port, tol float64) bool {
	return geometry.AnglesClose(p.Orientation, q.Orientation+180, tol)
}

// RenamePortsByOrientation renames every port into orientation buckets:
// E ports (heading within 45° of 0°), N (90°), W (180°), S (-90°).
// Within a bucket, ports are numbered by their cross-axis coordinate:
// W0 is the lowest west port, N0 the leftmost north port, and so on.
//
// Renaming happens in place on the component's port map.
func RenamePortsByOrientation(c *Component) {
	type entry struct {
		old  string
		port Port
	}
	buckets := map[string][]entry{}
	for name, p := range c.Ports {
		buckets[cardinal(p.Orientation)] = append(buckets[cardinal(p.Orientation)], entry{name, p})
	}

	renamed := make(map[string]Port, len(c.Ports))
	for dir, entries := range buckets {
		sort.Slice(entries, func(i, j int) bool {
			a, b := entries[i].port, entries[j].port
			if dir == "N" || dir == "S" {
				if a.Center.X != b.Center.X {
					return a.Center.X < b.Center.X
				}
			} else {
				if a.Center.Y != b.Center.Y {
					return a.Center.Y < b.Center.Y
				}
			}
			return entries[i].old < entries[j].old
		})
		for i, e := range entries {
			p := e.port
			p.Name = fmt.Sprintf("%s%d", dir, i)
			renamed[p.Name] = p
		}
	}
	c.Ports = renamed
}

// cardinal maps a heading to its nearest compass direction.
func cardinal(deg float64) string {
	deg = geometry.NormalizeAngle(deg)
	switch {
	case deg > -45 && deg <= 45:
		return "E"
	case deg > 45 && deg <= 135:
		return "N"
	case deg > -135 && deg <= -45:
		return "S"
	default:
		return "W"
	}
}
