// Package dataset loads the data-breach CSV into an immutable in-memory table.
package dataset

// Required column headers. Matching is case-insensitive after trimming.
const (
	ColumnYear             = "Year"
	ColumnOrganizationType = "Organization type"
	ColumnMethod           = "Method"
	ColumnRecords          = "Records"
)

// RequiredColumns lists the headers every dataset must carry.
var RequiredColumns = []string{ColumnYear, ColumnOrganizationType, ColumnMethod, ColumnRecords}

// Record is one reported breach.
type Record struct {
	Year             int    `json:"year"`
	OrganizationType string `json:"organization_type"`
	Method           string `json:"method"`
	Records          int64  `json:"records"`

	// HasRecords is false when the Records cell was empty.
	HasRecords bool `json:"has_records"`

	// Fields holds every raw cell keyed by its header, passthrough columns included.
	Fields map[string]string `json:"fields"`
}

// Field returns the raw value of the named column, or "" if absent.
func (r Record) Field(column string) string {
	return r.Fields[column]
}

// Dataset is the loaded table. It is never mutated after Load returns, so it
// can be shared freely between goroutines.
type Dataset struct {
	source  string
	columns []string
	records []Record

	organizationTypes []string
	methods           []string
	minYear, maxYear  int
}

// New builds a Dataset from already-parsed records. Columns gives the display
// order of Record.Fields; when empty the required columns are used.
func New(source string, columns []string, records []Record) *Dataset {
	if len(columns) == 0 {
		columns = append([]string(nil), RequiredColumns...)
	}
	ds := &Dataset{
		source:  source,
		columns: append([]string(nil), columns...),
		records: append([]Record(nil), records...),
	}
	ds.enumerate()
	return ds
}

// enumerate records the distinct category values of the full table in
// first-seen order along with the year bounds.
func (d *Dataset) enumerate() {
	seenOrg := make(map[string]bool)
	seenMethod := make(map[string]bool)
	for i, r := range d.records {
		if !seenOrg[r.OrganizationType] {
			seenOrg[r.OrganizationType] = true
			d.organizationTypes = append(d.organizationTypes, r.OrganizationType)
		}
		if !seenMethod[r.Method] {
			seenMethod[r.Method] = true
			d.methods = append(d.methods, r.Method)
		}
		if i == 0 || r.Year < d.minYear {
			d.minYear = r.Year
		}
		if i == 0 || r.Year > d.maxYear {
			d.maxYear = r.Year
		}
	}
}

// Source returns the path or label the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the record at index i.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of all records in file order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Columns returns the header names in file order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// OrganizationTypes returns the distinct organization types in first-seen order.
func (d *Dataset) OrganizationTypes() []string {
	out := make([]string, len(d.organizationTypes))
	copy(out, d.organizationTypes)
	return out
}

// Methods returns the distinct methods in first-seen order.
func (d *Dataset) Methods() []string {
	out := make([]string, len(d.methods))
	copy(out, d.methods)
	return out
}

// YearRange returns the smallest and largest year present. Both are zero for
// an empty dataset.
func (d *Dataset) YearRange() (minYear, maxYear int) {
	return d.minYear, d.maxYear
}
