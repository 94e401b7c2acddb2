package primitives

// PrimitiveDef is the YAML definition of a palette entry (see assets/primitives.yaml).
// Size is width, height and depth of the bounding box; Segments is the
// tessellation count for curved shapes.
type PrimitiveDef struct {
	Type     string     `yaml:"type"`
	Size     [3]float32 `yaml:"size,omitempty"`
	Color    string     `yaml:"color,omitempty"`
	Opacity  float32    `yaml:"opacity,omitempty"`
	Shape    string     `yaml:"shape,omitempty"`
	Segments int        `yaml:"segments,omitempty"`
	Rings    int        `yaml:"rings,omitempty"`
}

// catalogFile is the top-level layout of the palette YAML.
type catalogFile struct {
	Primitives []PrimitiveDef `yaml:"primitives"`
}
