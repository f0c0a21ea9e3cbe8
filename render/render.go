// Package render turns a computed payment list into header labels, display rows and
// terminal or JSON output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"smartpay/backend/listview"
	"smartpay/backend/models"
)

// Placeholder is shown instead of rows when the visible page is empty.
const Placeholder = "Belum ada pembayaran."

const (
	ascIndicator  = "▲"
	descIndicator = "▼"

	columnGap = "  "
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var labels = map[listview.Field]string{
	listview.FieldHouseholdName: "Nama KK",
	listview.FieldHouseBlock:    "Blok",
	listview.FieldEmail:         "Email",
	listview.FieldPaymentType:   "Jenis Pembayaran",
	listview.FieldMonth:         "Bulan",
	listview.FieldYear:          "Tahun",
	listview.FieldStatus:        "Status",
}

// Label is the column header for a field.
func Label(f listview.Field) string {
	return labels[f]
}

// Fields lists the columns a view shows, in order.
func Fields(view listview.View) []listview.Field {
	if view.Name == listview.Resident.Name {
		return []listview.Field{listview.FieldPaymentType, listview.FieldMonth, listview.FieldYear, listview.FieldStatus}
	}
	return []listview.Field{
		listview.FieldHouseholdName, listview.FieldHouseBlock, listview.FieldPaymentType,
		listview.FieldMonth, listview.FieldYear, listview.FieldStatus,
	}
}

// Column is one table header.
type Column struct {
	Field     listview.Field `json:"field"`
	Label     string         `json:"label"`
	Sortable  bool           `json:"sortable"`
	Indicator string         `json:"indicator,omitempty"`
}

// Title is the label with the sort indicator appended on the active column.
func (c Column) Title() string {
	if c.Indicator == "" {
		return c.Label
	}
	return c.Label + " " + c.Indicator
}

// Columns returns the view's headers, marking the column sorted by sort.
func Columns(view listview.View, sort listview.SortSpec) []Column {
	fields := Fields(view)
	cols := make([]Column, 0, len(fields)+1)
	for _, f := range fields {
		col := Column{Field: f, Label: Label(f), Sortable: view.CanSort(f)}
		if sort.Field != listview.FieldNone && sort.Field == f {
			col.Indicator = ascIndicator
			if sort.Direction == listview.Desc {
				col.Indicator = descIndicator
			}
		}
		cols = append(cols, col)
	}
	return append(cols, Column{Label: "Bukti"})
}

// Rows returns display strings per column for each record.
func Rows(view listview.View, records []models.PaymentRecord) [][]string {
	fields := Fields(view)
	out := make([][]string, 0, len(records))
	for _, p := range records {
		row := make([]string, 0, len(fields)+1)
		for _, f := range fields {
			v, ok := f.Value(p)
			switch {
			case f == listview.FieldStatus:
				v = view.Status.Display(p.Status)
			case !ok:
				v = "-"
			}
			row = append(row, v)
		}
		row = append(row, p.ProofURL)
		out = append(out, row)
	}
	return out
}

// Footer is the pagination line under a table.
func Footer(res listview.Result) string {
	return fmt.Sprintf("Halaman %d / %d", res.CurrentPage, res.TotalPages)
}

// Table writes res as an aligned terminal table followed by the page footer.
func Table(w io.Writer, view listview.View, res listview.Result, sort listview.SortSpec) error {
	if len(res.Rows) == 0 {
		if _, err := fmt.Fprintln(w, Placeholder); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, subtleStyle.Render(Footer(res)))
		return err
	}

	cols := Columns(view, sort)
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title()
	}
	rows := Rows(view, res.Rows)
	widths := columnWidths(append([][]string{titles}, rows...))

	styled := make([]string, len(titles))
	rules := make([]string, len(titles))
	for i, title := range titles {
		styled[i] = headerStyle.Render(title)
		rules[i] = strings.Repeat("─", widths[i])
	}
	if _, err := fmt.Fprintln(w, alignRow(styled, widths)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, alignRow(rules, widths)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, alignRow(row, widths)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	_, err := fmt.Fprintln(w, subtleStyle.Render(Footer(res)))
	return err
}

// columnWidths returns the widest visible cell per column. ANSI styling does not
// count toward the width.
func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	return widths
}

// alignRow pads each cell to its column width and separates columns by two spaces.
// The last column is not padded.
func alignRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(cell)
		if i < len(cells)-1 && i < len(widths) {
			b.WriteString(strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell))))
		}
	}
	return b.String()
}

// Page is the JSON body of a list view response.
type Page struct {
	View        string                 `json:"view"`
	Columns     []Column               `json:"columns"`
	Rows        [][]string             `json:"rows"`
	Records     []models.PaymentRecord `json:"records"`
	Placeholder string                 `json:"placeholder,omitempty"`
	Sort        listview.SortSpec      `json:"sort"`
	CurrentPage int                    `json:"currentPage"`
	TotalPages  int                    `json:"totalPages"`
	TotalRows   int                    `json:"totalRows"`
	PageSize    int                    `json:"pageSize"`
}

// JSON builds the response body for res.
func JSON(view listview.View, res listview.Result, sort listview.SortSpec) Page {
	p := Page{
		View:        view.Name,
		Columns:     Columns(view, sort),
		Rows:        Rows(view, res.Rows),
		Records:     res.Rows,
		Sort:        sort,
		CurrentPage: res.CurrentPage,
		TotalPages:  res.TotalPages,
		TotalRows:   res.TotalRows,
		PageSize:    res.PageSize,
	}
	if len(res.Rows) == 0 {
		p.Placeholder = Placeholder
	}
	return p
}
