package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/reglet-dev/translevel/internal/application/errors"
	"github.com/reglet-dev/translevel/internal/domain/diagram"
	"github.com/reglet-dev/translevel/internal/domain/entities"
	"github.com/reglet-dev/translevel/internal/domain/services"
	"github.com/reglet-dev/translevel/internal/domain/values"
)

// Request encapsulates all inputs needed to compute a diagram.
type Request struct {
	Dataset *entities.Dataset
	Filter  *services.DefectFilter
	Limit   string
	Range   diagram.FermiRange
}

// DiagramService computes transition-level diagrams for a dataset.
type DiagramService struct {
	logger      *slog.Logger
	concurrency int
}

// DiagramOption configures a DiagramService.
type DiagramOption func(*DiagramService)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) DiagramOption {
	return func(s *DiagramService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency limits how many defects are computed at once.
// Values below 1 select runtime.NumCPU().
func WithConcurrency(n int) DiagramOption {
	return func(s *DiagramService) {
		s.concurrency = n
	}
}

// NewDiagramService creates a new diagram service.
func NewDiagramService(opts ...DiagramOption) *DiagramService {
	s := &DiagramService{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.concurrency < 1 {
		s.concurrency = runtime.NumCPU()
	}
	return s
}

// Compute builds the dataset, selects the chemical-potential limit, filters
// defects and computes every remaining profile. Profiles keep dataset order.
// The first failing defect aborts the run.
func (s *DiagramService) Compute(ctx context.Context, req Request) (*diagram.Result, error) {
	if req.Dataset == nil {
		return nil, apperrors.NewValidationError("dataset", "dataset is required")
	}
	if err := req.Range.Validate(); err != nil {
		return nil, apperrors.NewValidationError("range", err.Error())
	}

	host, defects, err := req.Dataset.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}

	deltaMu, err := req.Dataset.ChemicalPotentialsFor(req.Limit)
	if err != nil {
		return nil, err
	}

	efMin, efMax := req.Range.Resolve(host)

	result := diagram.NewResult(req.Dataset.Name, req.Dataset.Version, req.Limit)
	result.ChemicalPotentials = deltaMu.ToMap()
	result.FermiMin = efMin
	result.FermiMax = efMax
	result.FundamentalGap = host.FundamentalGap()

	s.logger.Info("computing diagram",
		"run_id", result.RunID.String(),
		"dataset", req.Dataset.Name,
		"limit", req.Limit,
		"defects", len(defects),
		"ef_min", efMin,
		"ef_max", efMax,
	)

	selected := make([]bool, len(defects))
	for i, d := range defects {
		include, reason, err := req.Filter.ShouldInclude(d)
		if err != nil {
			return nil, apperrors.NewValidationError("filter", err.Error())
		}
		if !include {
			s.logger.Debug("skipping defect", "defect", d.Name(), "reason", reason)
			result.AddSkipped(d.Name(), reason)
			continue
		}
		selected[i] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, d := range defects {
		if !selected[i] {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profile, err := computeProfile(i, d, deltaMu, efMin, efMax)
			if err != nil {
				return apperrors.NewComputationError(d.Name(), "profile", err)
			}
			s.logger.Debug("defect profile computed",
				"defect", d.Name(),
				"points", len(profile.Points),
				"transitions", len(profile.Transitions),
			)
			result.AddProfile(profile)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Finalize()

	s.logger.Info("diagram computed",
		"run_id", result.RunID.String(),
		"profiles", len(result.Profiles),
		"skipped", len(result.Skipped),
		"transitions", result.TransitionCount(),
		"duration", result.Duration,
	)

	return result, nil
}

func computeProfile(index int, d *entities.Defect, deltaMu values.EnergyMap, efMin, efMax float64) (diagram.DefectProfile, error) {
	segments, err := d.Envelope(deltaMu, efMin, efMax)
	if err != nil {
		return diagram.DefectProfile{}, err
	}
	return diagram.DefectProfile{
		Index:         index,
		Name:          d.Name(),
		Site:          d.Site(),
		Stoichiometry: d.Stoichiometry().ToMap(),
		Points:        entities.EnvelopePoints(segments),
		Segments:      segments,
		Transitions:   entities.EnvelopeTransitions(segments),
	}, nil
}
