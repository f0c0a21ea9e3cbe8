// Package listview computes the visible slice of a payment list: filter, then sort,
// then paginate, over a snapshot that is already fully in memory.
package listview

import "smartpay/backend/models"

// Field names a filterable or sortable column of a payment record.
type Field string

const (
	FieldNone          Field = ""
	FieldHouseholdName Field = "name"
	FieldHouseBlock    Field = "block"
	FieldEmail         Field = "email"
	FieldPaymentType   Field = "type"
	FieldMonth         Field = "month"
	FieldYear          Field = "year"
	FieldStatus        Field = "status"
)

// AllFields lists every field in column order.
var AllFields = []Field{
	FieldHouseholdName,
	FieldHouseBlock,
	FieldEmail,
	FieldPaymentType,
	FieldMonth,
	FieldYear,
	FieldStatus,
}

// ParseField maps a wire name to a Field. Unknown names map to FieldNone.
func ParseField(name string) Field {
	for _, f := range AllFields {
		if string(f) == name {
			return f
		}
	}
	return FieldNone
}

// Value returns the record's value for the field and whether it is present.
// Identity fields are absent when the resident join failed; the payment type is
// absent on rows that predate it.
func (f Field) Value(p models.PaymentRecord) (string, bool) {
	switch f {
	case FieldHouseholdName:
		if p.Resident == nil {
			return "", false
		}
		return p.Resident.HouseholdName, true
	case FieldHouseBlock:
		if p.Resident == nil {
			return "", false
		}
		return p.Resident.HouseBlock, true
	case FieldEmail:
		if p.Resident == nil {
			return "", false
		}
		return p.Resident.Email, true
	case FieldPaymentType:
		if p.PaymentType == nil {
			return "", false
		}
		return *p.PaymentType, true
	case FieldMonth:
		return p.Month, true
	case FieldYear:
		return p.Year, true
	case FieldStatus:
		return p.Status, true
	}
	return "", false
}
