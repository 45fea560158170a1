// Package pipeline filters a breach dataset by a Selection and aggregates the
// result into the series the dashboards render.
package pipeline

import (
	"golang.org/x/sync/errgroup"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

// Result is everything derived from one dataset and selection. All aggregates
// are computed from the same View.
type Result struct {
	Selection Selection `json:"selection"`
	Summary   Summary   `json:"summary"`

	OrganizationTypes Counts      `json:"organization_types"`
	Methods           Counts      `json:"methods"`
	Years             []YearTotal `json:"years"`
	Hierarchy         Hierarchy   `json:"hierarchy"`

	view View
}

// View returns the filtered records backing the result.
func (r *Result) View() View { return r.view }

// Rows copies out the filtered records in dataset order.
func (r *Result) Rows() []dataset.Record { return r.view.Records() }

// Dataset returns the table the result was computed from.
func (r *Result) Dataset() *dataset.Dataset { return r.view.ds }

// Breakdown re-groups the result's filtered snapshot with dim as primary.
// When dim matches the selection's primary it returns the stored hierarchy.
func (r *Result) Breakdown(dim Dimension) Hierarchy {
	if dim == r.Hierarchy.Primary {
		return r.Hierarchy
	}
	return Breakdown(r.view, dim)
}

// Compute filters ds by sel and derives every aggregate. It fails only when ds
// holds no rows; any selection, however narrow, yields a valid result.
func Compute(ds *dataset.Dataset, sel Selection) (*Result, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, &InvalidSelectionError{Reason: "dataset has no rows"}
	}

	sel.Primary = sel.primary()
	view := Filter(ds, sel)
	res := &Result{Selection: sel, view: view}

	// Aggregates only read the shared view; the filter runs exactly once.
	var g errgroup.Group
	g.Go(func() error {
		res.Summary = Summarize(view)
		return nil
	})
	g.Go(func() error {
		res.OrganizationTypes = CategoryCounts(ds, view, DimOrganizationType)
		return nil
	})
	g.Go(func() error {
		res.Methods = CategoryCounts(ds, view, DimMethod)
		return nil
	})
	g.Go(func() error {
		res.Years = YearSeries(view)
		return nil
	})
	g.Go(func() error {
		res.Hierarchy = Breakdown(view, sel.Primary)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
