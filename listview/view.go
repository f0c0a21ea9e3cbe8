package listview

import (
	"slices"

	"smartpay/backend/models"
)

// View describes one rendering of the payment list: which fields it lets users
// filter and sort on, and how it shows statuses.
type View struct {
	Name       string
	Filterable []Field
	Sortable   []Field
	Status     StatusPolicy
}

// Admin is the monitoring table over every household's payments.
var Admin = View{
	Name: "admin",
	Filterable: []Field{
		FieldHouseholdName, FieldHouseBlock, FieldEmail, FieldPaymentType,
		FieldMonth, FieldYear, FieldStatus,
	},
	Sortable: []Field{
		FieldHouseholdName, FieldHouseBlock, FieldEmail, FieldPaymentType,
		FieldMonth, FieldYear, FieldStatus,
	},
	Status: StatusRelabel,
}

// Resident is one household's own payment history.
var Resident = View{
	Name:       "resident",
	Filterable: []Field{FieldMonth, FieldYear},
	Sortable:   []Field{FieldPaymentType, FieldMonth, FieldYear, FieldStatus},
	Status:     StatusRaw,
}

// CanFilter reports whether the view exposes a filter box for f.
func (v View) CanFilter(f Field) bool {
	return slices.Contains(v.Filterable, f)
}

// CanSort reports whether the view has a sortable header for f.
func (v View) CanSort(f Field) bool {
	return f == FieldNone || slices.Contains(v.Sortable, f)
}

// Restrict drops patterns on fields the view does not expose.
func (v View) Restrict(c Criteria) Criteria {
	out := make(Criteria, len(c))
	for f, pattern := range c {
		if v.CanFilter(f) {
			out[f] = pattern
		}
	}
	return out
}

// SortOrNone returns s when the view can sort on its field, otherwise no sort.
func (v View) SortOrNone(s SortSpec) SortSpec {
	if !v.CanSort(s.Field) {
		return SortSpec{Field: FieldNone, Direction: Asc}
	}
	if s.Direction != Desc {
		s.Direction = Asc
	}
	return s
}

// Compute runs the engine with the view's restrictions applied.
func (v View) Compute(records []models.PaymentRecord, filters Criteria, sort SortSpec, page PageState) Result {
	return Compute(records, v.Restrict(filters), v.SortOrNone(sort), page)
}
