package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartpay/backend/models"
)

func TestViewRestrict(t *testing.T) {
	c := Criteria{FieldHouseholdName: "budi", FieldMonth: "jan", FieldYear: "2025"}

	assert.Equal(t, c, Admin.Restrict(c))
	assert.Equal(t, Criteria{FieldMonth: "jan", FieldYear: "2025"}, Resident.Restrict(c))
}

func TestViewSortOrNone(t *testing.T) {
	tests := []struct {
		name string
		view View
		in   SortSpec
		want SortSpec
	}{
		{"admin sorts on name", Admin, SortSpec{FieldHouseholdName, Desc}, SortSpec{FieldHouseholdName, Desc}},
		{"resident cannot sort on name", Resident, SortSpec{FieldHouseholdName, Desc}, SortSpec{FieldNone, Asc}},
		{"resident sorts on status", Resident, SortSpec{FieldStatus, Desc}, SortSpec{FieldStatus, Desc}},
		{"unknown direction becomes asc", Resident, SortSpec{FieldYear, "sideways"}, SortSpec{FieldYear, Asc}},
		{"no field stays unsorted", Admin, SortSpec{FieldNone, Asc}, SortSpec{FieldNone, Asc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.SortOrNone(tt.in))
		})
	}
}

func TestViewComputeIgnoresHiddenFields(t *testing.T) {
	records := []models.PaymentRecord{
		payment(2, "Budi", "A1", "Januari", "2025", models.StatusPaid),
		payment(1, "Siti", "B2", "Januari", "2025", models.StatusUnpaid),
	}
	res := Resident.Compute(records, Criteria{FieldHouseholdName: "siti"}, SortSpec{FieldHouseholdName, Asc}, FirstPage())
	assert.Equal(t, []int64{2, 1}, ids(res.Rows))
}

func TestStatusPolicyDisplay(t *testing.T) {
	assert.Equal(t, models.LabelPaid, StatusRelabel.Display(models.StatusPaid))
	assert.Equal(t, models.LabelUnpaid, StatusRelabel.Display(models.StatusUnpaid))
	assert.Equal(t, models.LabelUnpaid, StatusRelabel.Display("Pending"))
	assert.Equal(t, "Pending", StatusRaw.Display("Pending"))
	assert.Equal(t, models.StatusPaid, Resident.Status.Display(models.StatusPaid))
}

func TestFieldValue(t *testing.T) {
	orphan := models.PaymentRecord{Month: "Maret", Year: "2024", Status: models.StatusPaid}
	for _, f := range []Field{FieldHouseholdName, FieldHouseBlock, FieldEmail, FieldPaymentType} {
		_, ok := f.Value(orphan)
		assert.False(t, ok, "field %s", f)
	}
	v, ok := FieldMonth.Value(orphan)
	assert.True(t, ok)
	assert.Equal(t, "Maret", v)
}
