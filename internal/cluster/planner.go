package cluster

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/pickup-planner/internal/geodist"
	"github.com/sells-group/pickup-planner/internal/model"
)

// Thresholds tune the warning checks. Zero values fall back to defaults.
type Thresholds struct {
	PairOutlierKm   float64 // intra-team pair distance warning
	GlobalOutlierKm float64 // distance from overall centroid warning
	SpreadWarnKm    float64 // MST total warning
}

// Default warning thresholds: 16 km (~10 miles) between teammates, 50 km
// from the overall centroid, 80 km of total team spread.
const (
	DefaultPairOutlierKm   = 16.0
	DefaultGlobalOutlierKm = 50.0
	DefaultSpreadWarnKm    = 80.0
)

func (t Thresholds) withDefaults() Thresholds {
	if t.PairOutlierKm == 0 {
		t.PairOutlierKm = DefaultPairOutlierKm
	}
	if t.GlobalOutlierKm == 0 {
		t.GlobalOutlierKm = DefaultGlobalOutlierKm
	}
	if t.SpreadWarnKm == 0 {
		t.SpreadWarnKm = DefaultSpreadWarnKm
	}
	return t
}

// Planner composes the clustering stages into a single synchronous call.
// A Planner is stateless across requests; concurrent Plan calls are safe as
// long as each caller owns its request data.
type Planner struct {
	thresholds Thresholds
}

// NewPlanner creates a Planner with the given warning thresholds.
func NewPlanner(t Thresholds) *Planner {
	return &Planner{thresholds: t.withDefaults()}
}

// Plan partitions the request's addresses into balanced teams.
//
// Stages run strictly in sequence: k-means partition, capacity repair,
// per-team spread metrics and outlier checks, color assignment. Metric
// computation for distinct teams runs in parallel, with results slotted by
// team index so output ordering stays deterministic. Any stage error aborts
// the whole request; no partial result is ever returned.
func (p *Planner) Plan(req Request) (*Result, error) {
	n := len(req.Addresses)
	if len(req.Names) < req.Teams {
		return nil, eris.Wrapf(ErrInput,
			"cluster: need at least %d team names, got %d", req.Teams, len(req.Names))
	}
	for _, a := range req.Addresses {
		if !a.Resolved() {
			return nil, eris.Wrapf(ErrInput,
				"cluster: address #%d %q has no coordinate", a.Row, a.Text)
		}
	}

	labels, err := partition(req.Addresses, req.Teams, req.Seed)
	if err != nil {
		return nil, err
	}

	var globalWarnings []string

	if req.Capacity > 0 {
		moves, err := redistribute(req.Addresses, labels, req.Teams, req.Capacity)
		if err != nil {
			return nil, err
		}
		if moves > 0 {
			globalWarnings = append(globalWarnings, fmt.Sprintf(
				"capacity repair moved %d address(es) between teams; affected teams may be less geographically tight",
				moves))
			zap.L().Info("cluster: capacity repair applied",
				zap.Int("moves", moves),
				zap.Int("capacity", req.Capacity),
			)
		}
	}

	groups := make([]Group, req.Teams)
	for g := range groups {
		groups[g].Name = req.Names[g]
	}
	for i, l := range labels {
		groups[l].Addresses = append(groups[l].Addresses, req.Addresses[i])
	}

	var eg errgroup.Group
	for g := range groups {
		g := g
		eg.Go(func() error {
			spread, err := mstKilometers(groups[g].Addresses)
			if err != nil {
				return err
			}
			groups[g].MSTKm = spread

			if w, ok := pairOutlierWarning(groups[g].Addresses, p.thresholds.PairOutlierKm); ok {
				groups[g].Warnings = append(groups[g].Warnings, w)
			}
			if spread > p.thresholds.SpreadWarnKm {
				groups[g].Warnings = append(groups[g].Warnings, fmt.Sprintf(
					"estimated team spread is %.2f km (%.2f miles) - verify addresses are correct",
					spread, spread*geodist.MilesPerKM))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, a := range GlobalOutliers(req.Addresses, p.thresholds.GlobalOutlierKm) {
		globalWarnings = append(globalWarnings, fmt.Sprintf(
			"address #%d %q is more than %.0f km from the main group - verify it is correct",
			a.Row, a.Text, p.thresholds.GlobalOutlierKm))
	}

	centroids := make([]model.Coordinate, req.Teams)
	occupied := make([]bool, req.Teams)
	for g := 0; g < req.Teams; g++ {
		centroids[g], occupied[g] = centroid(req.Addresses, labels, g)
	}
	colors := assignColors(centroids, occupied, Palette)
	for g := range groups {
		groups[g].Color = colors[g]
	}
	if req.Teams > len(Palette) {
		globalWarnings = append(globalWarnings, fmt.Sprintf(
			"%d teams exceed the %d-color palette; some teams share a color",
			req.Teams, len(Palette)))
	}

	return &Result{
		Groups:         groups,
		TotalAddresses: n,
		Teams:          req.Teams,
		GlobalWarnings: globalWarnings,
	}, nil
}
