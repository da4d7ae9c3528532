package primitives

// PrimitiveDef is the YAML definition of a named shape preset (e.g. assets/primitives/crate.yaml).
// Size is the full width/height; Sides is only read for "polygon".
type PrimitiveDef struct {
	Name  string     `yaml:"name"`
	Type  string     `yaml:"type"`
	Size  [2]float32 `yaml:"size,omitempty"`
	Sides int        `yaml:"sides,omitempty"`
}

// Shape types understood by Registry.
const (
	TypeQuad     = "quad"
	TypeTile     = "tile"
	TypeTriangle = "triangle"
	TypePolygon  = "polygon"
)
