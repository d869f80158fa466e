package report

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// PDFCanvas paints on an A4 portrait PDF document using the core Helvetica
// font. Text is translated to cp1252, the encoding of the core fonts.
type PDFCanvas struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	family string
}

func NewPDFCanvas() *PDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("expense-tracker", true)
	return &PDFCanvas{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		family: "Helvetica",
	}
}

func (c *PDFCanvas) AddPage()                          { c.pdf.AddPage() }
func (c *PDFCanvas) PageNo() int                       { return c.pdf.PageNo() }
func (c *PDFCanvas) PageSize() (float64, float64)      { return c.pdf.GetPageSize() }
func (c *PDFCanvas) SetFont(s FontStyle, size float64) { c.pdf.SetFont(c.family, string(s), size) }
func (c *PDFCanvas) SetTextColor(col Color)            { c.pdf.SetTextColor(col.R, col.G, col.B) }
func (c *PDFCanvas) SetFillColor(col Color)            { c.pdf.SetFillColor(col.R, col.G, col.B) }
func (c *PDFCanvas) SetDrawColor(col Color)            { c.pdf.SetDrawColor(col.R, col.G, col.B) }
func (c *PDFCanvas) Text(x, y float64, s string)       { c.pdf.Text(x, y, c.tr(s)) }
func (c *PDFCanvas) TextWidth(s string) float64        { return c.pdf.GetStringWidth(c.tr(s)) }
func (c *PDFCanvas) Line(x1, y1, x2, y2 float64)       { c.pdf.Line(x1, y1, x2, y2) }

func (c *PDFCanvas) Rect(x, y, w, h float64, style RectStyle) {
	c.pdf.Rect(x, y, w, h, string(style))
}

func (c *PDFCanvas) SetDocumentInfo(title, author string) {
	c.pdf.SetTitle(title, true)
	c.pdf.SetAuthor(author, true)
}

func (c *PDFCanvas) Write(w io.Writer) error {
	return c.pdf.Output(w)
}

// Err returns the first error fpdf recorded while drawing.
func (c *PDFCanvas) Err() error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}
