package pipeline

import "github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"

// View is a filtered subset of a dataset: an index list into the parent table.
// No record data is copied.
type View struct {
	ds      *dataset.Dataset
	indices []int
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.indices) }

// At returns the i-th record of the view.
func (v View) At(i int) dataset.Record { return v.ds.At(v.indices[i]) }

// Index returns the dataset position of the i-th record.
func (v View) Index(i int) int { return v.indices[i] }

// Records copies the view's records out in dataset order.
func (v View) Records() []dataset.Record {
	out := make([]dataset.Record, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.ds.At(idx)
	}
	return out
}

// Filter selects the records of ds allowed by sel in a single pass.
func Filter(ds *dataset.Dataset, sel Selection) View {
	v := View{ds: ds}
	if ds.Len() == 0 || sel.Years.Min > sel.Years.Max ||
		len(sel.OrganizationTypes) == 0 || len(sel.Methods) == 0 {
		return v
	}

	n := ds.Len()
	v.indices = make([]int, 0, n)
	for i := 0; i < n; i++ {
		if sel.Allows(ds.At(i)) {
			v.indices = append(v.indices, i)
		}
	}
	return v
}
