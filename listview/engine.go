package listview

import (
	"slices"
	"strings"

	"smartpay/backend/models"
)

// PageSize is the fixed number of rows per page.
const PageSize = 20

// Criteria maps a field to a case-insensitive substring pattern.
// An empty pattern puts no constraint on its field.
type Criteria map[Field]string

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps "desc" to Desc and anything else to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// SortSpec selects the sort column. FieldNone keeps the input order.
type SortSpec struct {
	Field     Field     `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle returns the sort that clicking the header of f produces: ascending on a new
// column, flipping direction on the active one.
func (s SortSpec) Toggle(f Field) SortSpec {
	if s.Field == f && s.Direction == Asc {
		return SortSpec{Field: f, Direction: Desc}
	}
	return SortSpec{Field: f, Direction: Asc}
}

// PageState is the requested page, 1-based.
type PageState struct {
	CurrentPage int
	PageSize    int
}

// FirstPage is page 1 at the fixed page size.
func FirstPage() PageState {
	return PageState{CurrentPage: 1, PageSize: PageSize}
}

// Result is the visible slice plus pagination metadata.
type Result struct {
	Rows        []models.PaymentRecord `json:"rows"`
	TotalRows   int                    `json:"totalRows"`
	TotalPages  int                    `json:"totalPages"`
	CurrentPage int                    `json:"currentPage"`
	PageSize    int                    `json:"pageSize"`
}

// Compute filters, sorts and paginates records. It never mutates records and never
// fails: empty input, empty criteria and out-of-range pages all have defined results.
func Compute(records []models.PaymentRecord, filters Criteria, sort SortSpec, page PageState) Result {
	filtered := Filter(records, filters)
	Sort(filtered, sort)

	size := page.PageSize
	if size <= 0 {
		size = PageSize
	}

	return Result{
		Rows:        paginate(filtered, page.CurrentPage, size),
		TotalRows:   len(filtered),
		TotalPages:  TotalPages(len(filtered), size),
		CurrentPage: page.CurrentPage,
		PageSize:    size,
	}
}

// Filter returns a new slice with the records matching every non-empty pattern.
func Filter(records []models.PaymentRecord, filters Criteria) []models.PaymentRecord {
	out := make([]models.PaymentRecord, 0, len(records))
	for _, r := range records {
		if matches(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.PaymentRecord, filters Criteria) bool {
	for field, pattern := range filters {
		if pattern == "" {
			continue
		}
		value, ok := field.Value(r)
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(value), strings.ToLower(pattern)) {
			return false
		}
	}
	return true
}

// Sort orders records in place by plain string comparison on the sort field.
// Pairs where either value is absent compare equal, so the stable sort leaves them
// in their incoming order; this is not a strict total order when absent values are
// mixed with present ones.
func Sort(records []models.PaymentRecord, sort SortSpec) {
	if sort.Field == FieldNone {
		return
	}
	slices.SortStableFunc(records, func(a, b models.PaymentRecord) int {
		return compare(a, b, sort)
	})
}

func compare(a, b models.PaymentRecord, sort SortSpec) int {
	av, aok := sort.Field.Value(a)
	bv, bok := sort.Field.Value(b)
	if !aok || !bok {
		return 0
	}
	// Years and months are labels, compared as strings: "10" sorts before "9".
	c := strings.Compare(av, bv)
	if sort.Direction == Desc {
		return -c
	}
	return c
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	if pages < 1 {
		return 1
	}
	return pages
}

func paginate(records []models.PaymentRecord, page, size int) []models.PaymentRecord {
	if page < 1 {
		return []models.PaymentRecord{}
	}
	if len(records) == 0 || page > TotalPages(len(records), size) {
		return []models.PaymentRecord{}
	}
	start := (page - 1) * size
	end := start + min(size, len(records)-start)
	return records[start:end]
}
