package tech

// LayerView describes how a layer is displayed in layout viewers.
// Colors are hex strings ("#ff9d9d"); Pattern names a fill pattern from
// the viewer's pattern table.
type LayerView struct {
	Color   string  `json:"color" toml:"color"`
	Alpha   float64 `json:"alpha" toml:"alpha"`
	Pattern string  `json:"pattern,omitempty" toml:"pattern,omitempty"`
	Visible bool    `json:"visible" toml:"visible"`
	Group   string  `json:"group,omitempty" toml:"group,omitempty"`
}

// LayerViews maps layer names to display styling.
type LayerViews map[string]LayerView

// Groups returns the distinct non-empty group names, in first-seen order
// over sorted layer names.
func (v LayerViews) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, name := range sortedKeys(v) {
		g := v[name].Group
		if g != "" && !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

// VisibleLayers returns the names of all visible layers, sorted.
func (v LayerViews) VisibleLayers() []string {
	var names []string
	for _, name := range sortedKeys(v) {
		if v[name].Visible {
			names = append(names, name)
		}
	}
	return names
}
