package report

import "io"

// =============================================================================
// CANVAS - Abstract page drawing surface
// =============================================================================

// Color is an RGB color with 0-255 components.
type Color struct {
	R, G, B int
}

type FontStyle string

const (
	FontRegular FontStyle = ""
	FontBold    FontStyle = "B"
	FontItalic  FontStyle = "I"
)

type RectStyle string

const (
	RectFill       RectStyle = "F"
	RectStroke     RectStyle = "D"
	RectFillStroke RectStyle = "FD"
)

// Canvas is the page drawing capability the renderer paints on. Coordinates
// are in page units (millimetres for PDFCanvas) from the top-left corner; Text
// places the baseline at y.
type Canvas interface {
	AddPage()
	PageNo() int
	PageSize() (width, height float64)

	SetFont(style FontStyle, size float64)
	SetTextColor(c Color)
	SetFillColor(c Color)
	SetDrawColor(c Color)

	Text(x, y float64, s string)
	TextWidth(s string) float64
	Rect(x, y, w, h float64, style RectStyle)
	Line(x1, y1, x2, y2 float64)

	// Write serializes the finished document.
	Write(w io.Writer) error
}

// errorer is implemented by canvases that accumulate drawing errors.
type errorer interface {
	Err() error
}

// documentInfo is implemented by canvases that carry document metadata.
type documentInfo interface {
	SetDocumentInfo(title, author string)
}

// Palette
var (
	colorPrimary   = Color{59, 130, 246}
	colorWhite     = Color{255, 255, 255}
	colorText      = Color{40, 40, 40}
	colorMuted     = Color{100, 100, 100}
	colorBorder    = Color{210, 214, 220}
	colorZebra     = Color{245, 247, 250}
	colorExpense   = Color{220, 38, 38}
	colorIncome    = Color{22, 163, 74}
	colorTotalFill = Color{254, 242, 242}
)
