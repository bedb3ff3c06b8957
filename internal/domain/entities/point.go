package entities

// Point is a (Fermi energy, formation energy) pair on a transition-level
// diagram.
type Point struct {
	FermiEnergy     float64 `json:"fermi_energy" yaml:"fermi_energy"`
	FormationEnergy float64 `json:"formation_energy" yaml:"formation_energy"`
}

// Segment is one straight piece of the lower envelope, carried by a single
// charge state between two breakpoints.
type Segment struct {
	Charge int   `json:"charge" yaml:"charge"`
	Start  Point `json:"start" yaml:"start"`
	End    Point `json:"end" yaml:"end"`
}

// Transition is a breakpoint of the envelope where the stable charge state
// changes from From to To.
type Transition struct {
	From  int   `json:"from" yaml:"from"`
	To    int   `json:"to" yaml:"to"`
	Level Point `json:"level" yaml:"level"`
}
