// Package diagram provides domain models for computed transition-level
// diagrams.
package diagram

import (
	"sort"
	"sync"
	"time"

	"github.com/reglet-dev/translevel/internal/domain/entities"
	"github.com/reglet-dev/translevel/internal/domain/values"
)

// Result is the transition-level diagram of every selected defect of a
// dataset under one chemical-potential limit.
type Result struct {
	StartTime          time.Time          `json:"start_time" yaml:"start_time"`
	EndTime            time.Time          `json:"end_time" yaml:"end_time"`
	DatasetName        string             `json:"dataset_name" yaml:"dataset_name"`
	DatasetVersion     string             `json:"dataset_version" yaml:"dataset_version"`
	Limit              string             `json:"limit" yaml:"limit"`
	ChemicalPotentials map[string]float64 `json:"chemical_potentials" yaml:"chemical_potentials"`
	FermiMin           float64            `json:"fermi_min" yaml:"fermi_min"`
	FermiMax           float64            `json:"fermi_max" yaml:"fermi_max"`
	FundamentalGap     float64            `json:"fundamental_gap" yaml:"fundamental_gap"`
	Profiles           []DefectProfile    `json:"profiles" yaml:"profiles"`
	Skipped            []SkippedDefect    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Duration           time.Duration      `json:"duration_ms" yaml:"duration_ms"`
	RunID              values.RunID       `json:"run_id" yaml:"run_id"`
	mu                 sync.Mutex
}

// DefectProfile is the lower envelope of one defect.
type DefectProfile struct {
	Name          string                `json:"name" yaml:"name"`
	Site          string                `json:"site,omitempty" yaml:"site,omitempty"`
	Stoichiometry map[string]int        `json:"stoichiometry" yaml:"stoichiometry"`
	Points        []entities.Point      `json:"points" yaml:"points"`
	Segments      []entities.Segment    `json:"segments" yaml:"segments"`
	Transitions   []entities.Transition `json:"transitions" yaml:"transitions"`
	Index         int                   `json:"index" yaml:"index"`
}

// SkippedDefect records a defect left out by the defect filter.
type SkippedDefect struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

// NewResult creates a new result for a dataset and limit.
func NewResult(datasetName, datasetVersion, limit string) *Result {
	return NewResultWithID(values.NewRunID(), datasetName, datasetVersion, limit)
}

// NewResultWithID creates a new result with a specific run ID.
func NewResultWithID(id values.RunID, datasetName, datasetVersion, limit string) *Result {
	return &Result{
		RunID:          id,
		DatasetName:    datasetName,
		DatasetVersion: datasetVersion,
		Limit:          limit,
		StartTime:      time.Now(),
		Profiles:       make([]DefectProfile, 0),
	}
}

// AddProfile adds a defect profile.
// Thread-safe for concurrent calls during parallel computation.
func (r *Result) AddProfile(p DefectProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Profiles = append(r.Profiles, p)
}

// AddSkipped records a filtered-out defect.
func (r *Result) AddSkipped(name, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skipped = append(r.Skipped, SkippedDefect{Name: name, Reason: reason})
}

// Profile returns the profile of the named defect, or nil.
// Thread-safe.
func (r *Result) Profile(name string) *DefectProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.Profiles {
		if r.Profiles[i].Name == name {
			return &r.Profiles[i]
		}
	}
	return nil
}

// Finalize stamps the end time and restores dataset order, which parallel
// computation does not preserve.
func (r *Result) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	sort.Slice(r.Profiles, func(i, j int) bool {
		return r.Profiles[i].Index < r.Profiles[j].Index
	})
}

// TransitionCount returns the number of transition levels over all profiles.
func (r *Result) TransitionCount() int {
	n := 0
	for _, p := range r.Profiles {
		n += len(p.Transitions)
	}
	return n
}
