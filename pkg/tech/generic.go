package tech

// Generic returns a built-in 220 nm SOI technology with strip and rib
// cross-sections. It is used by tests, demos, and as the default when no
// tech file is given.
func Generic() *Tech {
	return &Tech{
		Name: "generic_soi220",
		Layers: LayerMap{
			"WG":      {Layer: 1, Datatype: 0},
			"SLAB90":  {Layer: 3, Datatype: 0},
			"DEEPTRE": {Layer: 4, Datatype: 0},
			"HEATER":  {Layer: 47, Datatype: 0},
			"M1":      {Layer: 41, Datatype: 0},
			"VIA1":    {Layer: 44, Datatype: 0},
			"TEXT":    {Layer: 66, Datatype: 0},
			"FLOORPLAN": {Layer: 64, Datatype: 0},
		},
		Views: LayerViews{
			"WG":     {Color: "#ff9d9d", Alpha: 1.0, Visible: true, Group: "silicon"},
			"SLAB90": {Color: "#80a8ff", Alpha: 0.6, Visible: true, Group: "silicon"},
			"HEATER": {Color: "#e0a020", Alpha: 0.8, Visible: true, Group: "metal"},
			"M1":     {Color: "#01ff6b", Alpha: 0.5, Visible: true, Group: "metal"},
			"TEXT":   {Color: "#808080", Alpha: 1.0, Visible: false},
		},
		Stack: LayerStack{
			"box": {
				Layer: Layer{Layer: 99, Datatype: 0}, Thickness: 2.0, ZMin: -2.0,
				Material: "sio2", MeshOrder: 9,
			},
			"core": {
				Layer: Layer{Layer: 1, Datatype: 0}, Thickness: 0.22, ZMin: 0,
				Material: "si", SidewallAngle: 10, MeshOrder: 2,
			},
			"slab90": {
				Layer: Layer{Layer: 3, Datatype: 0}, Thickness: 0.09, ZMin: 0,
				Material: "si", MeshOrder: 3,
			},
			"clad": {
				Layer: Layer{Layer: 98, Datatype: 0}, Thickness: 3.0, ZMin: 0,
				Material: "sio2", MeshOrder: 10,
			},
			"heater": {
				Layer: Layer{Layer: 47, Datatype: 0}, Thickness: 0.75, ZMin: 2.2,
				Material: "tin", MeshOrder: 4,
			},
		},
		CrossSections: map[string]CrossSectionConfig{
			"strip": {
				Width: 0.5, Layer: "WG", Radius: 10.0, MinLength: 0.01,
			},
			"rib": {
				Width: 0.5, Layer: "WG", Radius: 20.0, MinLength: 0.01,
				Sections: []SectionConfig{
					{Width: 6.0, Offset: 0, Layer: "SLAB90"},
				},
			},
			"strip_heater": {
				Width: 0.5, Layer: "WG", Radius: 10.0, MinLength: 0.01,
				Sections: []SectionConfig{
					{Width: 2.5, Offset: 0, Layer: "HEATER"},
				},
			},
		},
	}
}
