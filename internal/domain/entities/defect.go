package entities

import (
	"fmt"

	"github.com/reglet-dev/translevel/internal/domain/values"
)

// Defect groups the charge states of one point defect in a host.
//
// Charge states are only ever added, never replaced or removed. Iteration
// follows insertion order, which decides ties between charge states of
// exactly equal energy. A Defect is safe for concurrent reads once all
// charge states have been added.
type Defect struct {
	name          string
	site          string
	stoichiometry values.Stoichiometry
	host          *Host

	states map[int]*ChargeState
	order  []int
}

// NewDefect creates a Defect without charge states.
func NewDefect(name string, stoichiometry values.Stoichiometry, host *Host, site string) *Defect {
	return &Defect{
		name:          name,
		site:          site,
		stoichiometry: stoichiometry,
		host:          host,
		states:        make(map[int]*ChargeState),
	}
}

// Name returns the defect label.
func (d *Defect) Name() string { return d.name }

// Site returns the lattice-site label. Informational only.
func (d *Defect) Site() string { return d.site }

// Stoichiometry returns the atom-count change relative to the host.
func (d *Defect) Stoichiometry() values.Stoichiometry { return d.stoichiometry }

// Host returns the shared host.
func (d *Defect) Host() *Host { return d.host }

// AddChargeState creates, stores and returns the charge state q.
func (d *Defect) AddChargeState(q int, energy float64) (*ChargeState, error) {
	if _, exists := d.states[q]; exists {
		return nil, fmt.Errorf("defect %s, charge %+d: %w", d.name, q, ErrDuplicateChargeState)
	}

	cs := &ChargeState{
		charge:        q,
		energy:        energy,
		host:          d.host,
		stoichiometry: d.stoichiometry,
	}
	d.states[q] = cs
	d.order = append(d.order, q)
	return cs, nil
}

// ChargeState returns the charge state q.
func (d *Defect) ChargeState(q int) (*ChargeState, error) {
	cs, ok := d.states[q]
	if !ok {
		return nil, &UnknownChargeError{Defect: d.name, Charge: q}
	}
	return cs, nil
}

// Charges returns the charges in insertion order.
func (d *Defect) Charges() []int {
	out := make([]int, len(d.order))
	copy(out, d.order)
	return out
}

// ChargeStates returns the charge states in insertion order.
func (d *Defect) ChargeStates() []*ChargeState {
	out := make([]*ChargeState, 0, len(d.order))
	for _, q := range d.order {
		out = append(out, d.states[q])
	}
	return out
}

// ChargeStateAtFermiEnergy returns the charge state with the lowest relative
// formation energy at eFermi. Exact ties go to the first one added.
func (d *Defect) ChargeStateAtFermiEnergy(eFermi float64) (*ChargeState, error) {
	if len(d.order) == 0 {
		return nil, fmt.Errorf("defect %s: %w", d.name, ErrNoChargeStates)
	}

	best := d.states[d.order[0]]
	bestEnergy := best.RelativeFormationEnergy(eFermi)
	for _, q := range d.order[1:] {
		cs := d.states[q]
		if e := cs.RelativeFormationEnergy(eFermi); e < bestEnergy {
			best, bestEnergy = cs, e
		}
	}
	return best, nil
}

// DefectEnergyAtFermiEnergy returns the minimum formation energy over all
// charge states at eFermi.
func (d *Defect) DefectEnergyAtFermiEnergy(eFermi float64, deltaMu values.EnergyMap) (float64, error) {
	cs, err := d.ChargeStateAtFermiEnergy(eFermi)
	if err != nil {
		return 0, err
	}
	return cs.FormationEnergy(eFermi, deltaMu)
}

// TransitionLevel returns the crossing of the formation-energy lines of
// charges q1 and q2. Each line is E(x) = q*x + c_q with c_q the formation
// energy at a Fermi energy of zero.
func (d *Defect) TransitionLevel(q1, q2 int, deltaMu values.EnergyMap) (Point, error) {
	if q1 == q2 {
		return Point{}, fmt.Errorf("defect %s, charge %+d: %w", d.name, q1, ErrEqualCharges)
	}

	cs1, err := d.ChargeState(q1)
	if err != nil {
		return Point{}, err
	}
	cs2, err := d.ChargeState(q2)
	if err != nil {
		return Point{}, err
	}

	c1, err := cs1.FormationEnergy(0.0, deltaMu)
	if err != nil {
		return Point{}, fmt.Errorf("defect %s, charge %+d: %w", d.name, q1, err)
	}
	c2, err := cs2.FormationEnergy(0.0, deltaMu)
	if err != nil {
		return Point{}, fmt.Errorf("defect %s, charge %+d: %w", d.name, q2, err)
	}

	x := (c2 - c1) / float64(q1-q2)
	return Point{FermiEnergy: x, FormationEnergy: float64(float64(q1)*x) + c1}, nil
}

// TLProfile returns the breakpoints of the lower envelope of all
// formation-energy lines over [efMin, efMax], from efMin to efMax.
func (d *Defect) TLProfile(deltaMu values.EnergyMap, efMin, efMax float64) ([]Point, error) {
	segments, err := d.Envelope(deltaMu, efMin, efMax)
	if err != nil {
		return nil, err
	}
	return EnvelopePoints(segments), nil
}

// Transitions returns the transition levels that lie on the envelope
// strictly inside [efMin, efMax], in order of increasing Fermi energy.
func (d *Defect) Transitions(deltaMu values.EnergyMap, efMin, efMax float64) ([]Transition, error) {
	segments, err := d.Envelope(deltaMu, efMin, efMax)
	if err != nil {
		return nil, err
	}
	return EnvelopeTransitions(segments), nil
}

// EnvelopePoints returns the breakpoints of an envelope: the start of the
// first segment and the end of every segment.
func EnvelopePoints(segments []Segment) []Point {
	if len(segments) == 0 {
		return nil
	}
	points := make([]Point, 0, len(segments)+1)
	points = append(points, segments[0].Start)
	for _, seg := range segments {
		points = append(points, seg.End)
	}
	return points
}

// EnvelopeTransitions returns the charge changes between consecutive
// segments of an envelope.
func EnvelopeTransitions(segments []Segment) []Transition {
	if len(segments) == 0 {
		return nil
	}
	transitions := make([]Transition, 0, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		transitions = append(transitions, Transition{
			From:  segments[i-1].Charge,
			To:    segments[i].Charge,
			Level: segments[i].Start,
		})
	}
	return transitions
}

// Envelope sweeps from efMin towards efMax along the lower envelope. Starting
// from the most stable charge state at efMin, it repeatedly moves to the
// lower charge whose line crosses the current one first. The sweep ends at
// the lowest charge or when the next crossing is not below efMax.
func (d *Defect) Envelope(deltaMu values.EnergyMap, efMin, efMax float64) ([]Segment, error) {
	current, err := d.ChargeStateAtFermiEnergy(efMin)
	if err != nil {
		return nil, err
	}

	startEnergy, err := current.FormationEnergy(efMin, deltaMu)
	if err != nil {
		return nil, fmt.Errorf("defect %s, charge %+d: %w", d.name, current.charge, err)
	}

	q1 := current.charge
	from := Point{FermiEnergy: efMin, FormationEnergy: startEnergy}
	lowest := d.minCharge()

	var segments []Segment
	for q1 != lowest {
		var (
			next  Point
			nextQ int
			found bool
		)
		for _, q2 := range d.order {
			if q2 >= q1 {
				continue
			}
			p, err := d.TransitionLevel(q1, q2, deltaMu)
			if err != nil {
				return nil, err
			}
			if !found || p.FermiEnergy < next.FermiEnergy {
				next, nextQ, found = p, q2, true
			}
		}

		if next.FermiEnergy >= efMax {
			break
		}
		segments = append(segments, Segment{Charge: q1, Start: from, End: next})
		from = next
		q1 = nextQ
	}

	endEnergy, err := d.states[q1].FormationEnergy(efMax, deltaMu)
	if err != nil {
		return nil, fmt.Errorf("defect %s, charge %+d: %w", d.name, q1, err)
	}
	segments = append(segments, Segment{
		Charge: q1,
		Start:  from,
		End:    Point{FermiEnergy: efMax, FormationEnergy: endEnergy},
	})
	return segments, nil
}

func (d *Defect) minCharge() int {
	lowest := d.order[0]
	for _, q := range d.order[1:] {
		if q < lowest {
			lowest = q
		}
	}
	return lowest
}
