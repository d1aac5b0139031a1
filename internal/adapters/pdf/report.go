// Package pdf renders the employee directory as a printable PDF report.
// Records are laid out as one table row each, continued across as many
// landscape pages as needed; every page repeats the header bar, the column
// headings and a footer naming the data origin.
package pdf

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/format"
	"github.com/csg33k/employee-directory/internal/ports"
)

const DefaultTitle = "Employee Directory"

type Report struct {
	Title  string
	Locale string
	Now    func() time.Time
}

var _ ports.DirectoryExporter = (*Report)(nil)

func New(title, locale string) *Report {
	if title == "" {
		title = DefaultTitle
	}
	return &Report{Title: title, Locale: locale, Now: time.Now}
}

func (r *Report) ContentType() string { return "application/pdf" }
func (r *Report) Extension() string   { return "pdf" }

type column struct {
	label string
	width float64 // share of the content width
	align string
	value func(e domain.Employee) string
}

// Export writes the report for list to w.
func (r *Report) Export(ctx context.Context, list domain.EmployeeList, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	generated := now()
	opts := []format.Option{format.WithLocale(r.locale())}

	cols := []column{
		{"Name", 0.17, "L", func(e domain.Employee) string { return e.FullName() }},
		{"Email", 0.22, "L", func(e domain.Employee) string { return e.Email }},
		{"Job Title", 0.16, "L", func(e domain.Employee) string { return e.JobTitle }},
		{"Department", 0.12, "L", func(e domain.Employee) string { return e.Department }},
		{"Location", 0.11, "L", func(e domain.Employee) string { return e.Location }},
		{"Salary", 0.11, "R", func(e domain.Employee) string { return format.FormatCurrency(e.Salary, opts...) }},
		{"Hire Date", 0.11, "R", func(e domain.Employee) string {
			if s, err := format.FormatDate(e.HireDate, opts...); err == nil {
				return s
			}
			return e.HireDate
		}},
	}

	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle(r.Title, true)
	pdf.SetCreationDate(generated)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageH := pdf.GetPageSize()
	_, _, _, marginB := pdf.GetMargins()
	footerY := pageH - marginB - 6
	rowH := 6.5

	stamp, err := format.FormatDateTime(generated, opts...)
	if err != nil {
		stamp = generated.Format(time.RFC3339)
	}
	pdf.SetFooterFunc(func() {
		drawFooter(pdf, tr, list.Origin, stamp)
	})

	var y float64
	newPage := func() {
		pdf.AddPage()
		y = drawHeader(pdf, tr, r.Title, len(list.Employees))
		y = drawColumnHeadings(pdf, cols, y)
	}
	newPage()

	if len(list.Employees) == 0 {
		marginL, _, _, _ := pdf.GetMargins()
		pdf.SetXY(marginL, y+4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, "No employees found.", "", 1, "C", false, 0, "")
	}

	for i, e := range list.Employees {
		if y+rowH > footerY-2 {
			newPage()
		}
		drawRow(pdf, tr, cols, e, i, y, rowH)
		y += rowH
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return pdf.Output(w)
}

func (r *Report) locale() string {
	if r.Locale != "" {
		return r.Locale
	}
	return format.DefaultLocale
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, title string, count int) float64 {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW/2, 7, tr(title), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2-4, 7, fmt.Sprintf("%d employees  |  Page %d of {nb}", count, pdf.PageNo()), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return marginT + 14
}

func drawColumnHeadings(pdf *fpdf.Fpdf, cols []column, y float64) float64 {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(marginL, y)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(contentW*c.width, 7, c.label, "1", ln, c.align, true, 0, "")
	}
	return y + 7
}

func drawRow(pdf *fpdf.Fpdf, tr func(string) string, cols []column, e domain.Employee, i int, y, h float64) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// Alternating row background
	if i%2 == 0 {
		pdf.SetFillColor(250, 250, 250)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.SetXY(marginL, y)
	for j, c := range cols {
		ln := 0
		if j == len(cols)-1 {
			ln = 1
		}
		w := contentW * c.width
		pdf.CellFormat(w, h, fit(pdf, tr, c.value(e), w-2), "1", ln, c.align, true, 0, "")
	}
}

// fit translates s for the core fonts, shortening the UTF-8 text with an
// ellipsis until the translated result fits in width.
func fit(pdf *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	for n := utf8.RuneCountInString(s); n > 0; n-- {
		if out := tr(format.Truncate(s, n)); pdf.GetStringWidth(out) <= width {
			return out
		}
	}
	return ""
}

func drawFooter(pdf *fpdf.Fpdf, tr func(string) string, origin domain.Origin, generated string) {
	pageW, pageH := pdf.GetPageSize()
	marginL, _, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	source := "Source: employees API"
	if origin == domain.OriginFallback {
		source = "Source: sample data (API unavailable)"
	}

	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, tr(source), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, tr("Generated "+generated), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
