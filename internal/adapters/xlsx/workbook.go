// Package xlsx exports the employee directory as an Excel workbook with one
// sheet of records and a small summary sheet.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/format"
	"github.com/csg33k/employee-directory/internal/ports"
)

const (
	SheetEmployees = "Employees"
	SheetSummary   = "Summary"
)

var headers = []string{"ID", "First Name", "Last Name", "Email", "Job Title", "Department", "Location", "Salary", "Hire Date"}

type Workbook struct {
	Now func() time.Time
}

var _ ports.DirectoryExporter = (*Workbook)(nil)

func New() *Workbook { return &Workbook{Now: time.Now} }

func (b *Workbook) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (b *Workbook) Extension() string { return "xlsx" }

// Export writes list to w. Salaries are numeric cells with a currency
// format; hire dates are real date cells when they parse.
func (b *Workbook) Export(ctx context.Context, list domain.EmployeeList, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetEmployees); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if err := writeEmployees(f, list.Employees); err != nil {
		return err
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	if err := writeSummary(f, list, now()); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeEmployees(f *excelize.File, emps []domain.Employee) error {
	headStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1E1E1E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	moneyFmt := `"$"#,##0.00`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("xlsx: money style: %w", err)
	}
	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("xlsx: date style: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetEmployees, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: header row: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(SheetEmployees, "A1", lastCol+"1", headStyle); err != nil {
		return err
	}

	for i, e := range emps {
		row := i + 2
		var hired any = e.HireDate
		if t, err := format.ParseDate(e.HireDate); err == nil {
			hired = t
		}
		values := []any{e.ID, e.FirstName, e.LastName, e.Email, e.JobTitle, e.Department, e.Location, e.Salary, hired}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetEmployees, cell, &values); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", row, err)
		}
		if err := f.SetCellStyle(SheetEmployees, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), moneyStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetEmployees, fmt.Sprintf("I%d", row), fmt.Sprintf("I%d", row), dateStyle); err != nil {
			return err
		}
	}

	widths := []float64{6, 14, 14, 30, 24, 16, 14, 14, 12}
	for i, wd := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetEmployees, col, col, wd); err != nil {
			return err
		}
	}
	if err := f.SetPanes(SheetEmployees, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx: freeze header: %w", err)
	}
	if len(emps) > 0 {
		ref := fmt.Sprintf("A1:%s%d", lastCol, len(emps)+1)
		if err := f.AutoFilter(SheetEmployees, ref, nil); err != nil {
			return fmt.Errorf("xlsx: autofilter: %w", err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, list domain.EmployeeList, generated time.Time) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("xlsx: summary sheet: %w", err)
	}
	var total float64
	var tenureDays, dated int
	for _, e := range list.Employees {
		total += e.Salary
		if d, err := format.DifferenceInDays(e.HireDate, generated); err == nil {
			tenureDays += d
			dated++
		}
	}
	avgSalary, avgTenure := "", ""
	if n := len(list.Employees); n > 0 {
		avgSalary = format.FormatCurrencyCompact(total / float64(n))
	}
	if dated > 0 {
		avgTenure = format.FormatNumber(float64(tenureDays)/float64(dated), format.WithFractionDigits(0, 0)) + " days"
	}
	rows := [][]any{
		{"Employees", len(list.Employees)},
		{"Origin", string(list.Origin)},
		{"Total salary", format.FormatCurrency(total)},
		{"Average salary", avgSalary},
		{"Average tenure", avgTenure},
		{"Generated", generated.UTC().Format(time.RFC3339)},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return fmt.Errorf("xlsx: summary row: %w", err)
		}
	}
	return f.SetColWidth(SheetSummary, "A", "B", 20)
}
