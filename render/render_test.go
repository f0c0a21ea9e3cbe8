package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpay/backend/listview"
	"smartpay/backend/models"
)

func TestColumnsIndicator(t *testing.T) {
	cols := Columns(listview.Admin, listview.SortSpec{Field: listview.FieldYear, Direction: listview.Desc})

	var titles []string
	for _, c := range cols {
		titles = append(titles, c.Title())
	}
	assert.Equal(t, []string{"Nama KK", "Blok", "Jenis Pembayaran", "Bulan", "Tahun ▼", "Status", "Bukti"}, titles)

	cols = Columns(listview.Resident, listview.SortSpec{Field: listview.FieldMonth, Direction: listview.Asc})
	assert.Equal(t, "Bulan ▲", cols[1].Title())
	assert.True(t, cols[1].Sortable)
	assert.False(t, cols[len(cols)-1].Sortable)
}

func TestColumnsWithoutSort(t *testing.T) {
	for _, c := range Columns(listview.Admin, listview.SortSpec{}) {
		assert.Empty(t, c.Indicator)
	}
}

func TestRows(t *testing.T) {
	records := []models.PaymentRecord{
		{
			Resident:    &models.ResidentRef{HouseholdName: "Budi", HouseBlock: "A1"},
			PaymentType: models.StringPtr("CCTV"),
			Month:       "Mei",
			Year:        "2025",
			Status:      models.StatusUnpaid,
			ProofURL:    "u",
		},
		{Month: "Juni", Year: "2025", Status: models.StatusPaid},
	}

	rows := Rows(listview.Admin, records)
	assert.Equal(t, []string{"Budi", "A1", "CCTV", "Mei", "2025", models.LabelUnpaid, "u"}, rows[0])
	assert.Equal(t, []string{"-", "-", "-", "Juni", "2025", models.LabelPaid, ""}, rows[1])

	rows = Rows(listview.Resident, records[1:])
	assert.Equal(t, []string{"-", "Juni", "2025", models.StatusPaid, ""}, rows[0])
}

func TestTable(t *testing.T) {
	records := []models.PaymentRecord{
		{ID: 1, Resident: &models.ResidentRef{HouseholdName: "Siti", HouseBlock: "B2"}, Month: "Januari", Year: "2025", Status: models.StatusPaid},
	}
	res := listview.Admin.Compute(records, nil, listview.SortSpec{}, listview.FirstPage())

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, listview.Admin, res, listview.SortSpec{}))

	out := buf.String()
	assert.Contains(t, out, "Nama KK")
	assert.Contains(t, out, "Siti")
	assert.Contains(t, out, models.LabelPaid)
	assert.Contains(t, out, "Halaman 1 / 1")
	assert.NotContains(t, out, Placeholder)
}

func TestAlignRowIgnoresStyling(t *testing.T) {
	bold := "\x1b[1;36mNama KK\x1b[0m"
	widths := columnWidths([][]string{{"Nama KK", "Status"}, {"Siti", "Lunas"}})
	assert.Equal(t, []int{7, 6}, widths)

	header := alignRow([]string{bold, "Status"}, widths)
	row := alignRow([]string{"Siti", "Lunas"}, widths)

	require.True(t, strings.HasSuffix(header, "Status"))
	assert.Equal(t, 9, lipgloss.Width(strings.TrimSuffix(header, "Status")))
	assert.Equal(t, 9, strings.Index(row, "Lunas"))
	assert.Equal(t, "Siti     Lunas", row)
}

func TestTableEmpty(t *testing.T) {
	res := listview.Compute(nil, nil, listview.SortSpec{}, listview.FirstPage())

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, listview.Resident, res, listview.SortSpec{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Placeholder, lines[0])
	assert.Contains(t, lines[1], "Halaman 1 / 1")
}

func TestJSONPlaceholder(t *testing.T) {
	empty := JSON(listview.Admin, listview.Compute(nil, nil, listview.SortSpec{}, listview.FirstPage()), listview.SortSpec{})
	assert.Equal(t, Placeholder, empty.Placeholder)
	assert.Equal(t, 1, empty.TotalPages)

	full := JSON(listview.Admin, listview.Compute([]models.PaymentRecord{{ID: 1}}, nil, listview.SortSpec{}, listview.FirstPage()), listview.SortSpec{})
	assert.Empty(t, full.Placeholder)
	assert.Len(t, full.Rows, 1)
	assert.Equal(t, "admin", full.View)
}
