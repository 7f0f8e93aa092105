package compose

import (
	"bytes"
	_ "embed"
	"fmt"

	"meshmind/internal/content"

	"github.com/go-pdf/fpdf"
)

// DejaVu Sans covers the math symbols (π √ ≤ ≈ →) and accented Latin text
// that the core PDF fonts cannot encode.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontItalic []byte
)

const fontFamily = "DejaVu"

const (
	pageMargin     = 54.0 // 0.75in
	bodyLeading    = 16.0
	questionIndent = 20.0
	noteIndent     = 40.0
)

var (
	primaryColor   = RGB{0x25, 0x63, 0xEB}
	secondaryColor = RGB{0x10, 0xB9, 0x81}
	textColor      = RGB{0x1F, 0x29, 0x37}
	mutedColor     = RGB{0x6B, 0x72, 0x80}
)

// Compose renders content as a US Letter PDF. It either returns the complete
// document or an error; no partial output is produced.
func Compose(c content.Content, opts Options) ([]byte, error) {
	return Render(Layout(c, opts), opts)
}

// Render draws a block plan produced by Layout.
func Render(blocks []Block, opts Options) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("render pdf: %v", r)
		}
	}()
	l := labelsFor(opts.Language)

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	if !opts.GeneratedAt.IsZero() {
		pdf.SetCreationDate(opts.GeneratedAt)
		pdf.SetModificationDate(opts.GeneratedAt)
		pdf.SetCatalogSort(true)
	}
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fontItalic)
	r := &renderer{pdf: pdf}

	for _, b := range blocks {
		if b.Kind == KindTitle {
			pdf.SetTitle(b.Text, true)
			break
		}
	}
	pdf.SetSubject(fmt.Sprintf("%s %s", capitalize(opts.Subject), opts.Grade), true)
	pdf.SetCreator("meshmind", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin + 12)
		pdf.SetFont(fontFamily, "I", 8)
		r.color(mutedColor)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s %d", l.Page, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	for _, b := range blocks {
		r.draw(b)
		if pdf.Err() {
			return nil, fmt.Errorf("render pdf: %w", pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *fpdf.Fpdf
}

func (r *renderer) color(c RGB) {
	r.pdf.SetTextColor(c.R, c.G, c.B)
}

func (r *renderer) draw(b Block) {
	pdf := r.pdf
	switch b.Kind {
	case KindTitle:
		pdf.SetFont(fontFamily, "B", 24)
		r.color(primaryColor)
		pdf.MultiCell(0, 30, b.Text, "", "C", false)
		pdf.Ln(20)
	case KindMeta:
		pdf.SetFont(fontFamily, "", 11)
		r.color(mutedColor)
		pdf.MultiCell(0, bodyLeading, b.Text, "", "L", false)
		pdf.Ln(8)
	case KindHeading:
		pdf.Ln(20)
		pdf.SetFont(fontFamily, "B", 16)
		r.color(primaryColor)
		pdf.MultiCell(0, 20, b.Text, "", "L", false)
		pdf.Ln(10)
	case KindSubheading:
		pdf.Ln(10)
		pdf.SetFont(fontFamily, "B", 12)
		r.color(secondaryColor)
		pdf.MultiCell(0, 15, b.Text, "", "L", false)
		pdf.Ln(5)
	case KindParagraph:
		pdf.SetFont(fontFamily, "", 11)
		r.color(textColor)
		pdf.MultiCell(0, bodyLeading, b.Text, "", "L", false)
		pdf.Ln(8)
	case KindLabeled:
		r.color(textColor)
		pdf.SetFont(fontFamily, "B", 11)
		if b.Inline {
			pdf.Write(bodyLeading, b.Label+": ")
			pdf.SetFont(fontFamily, "", 11)
			pdf.Write(bodyLeading, b.Text)
			pdf.Ln(bodyLeading)
		} else {
			pdf.MultiCell(0, bodyLeading, b.Label+":", "", "L", false)
			pdf.SetFont(fontFamily, "", 11)
			if b.Text != "" {
				pdf.MultiCell(0, bodyLeading, b.Text, "", "L", false)
			}
		}
		pdf.Ln(8)
	case KindQuestion:
		pdf.Ln(8)
		r.indented(questionIndent, func() {
			r.color(textColor)
			pdf.SetFont(fontFamily, "B", 11)
			pdf.Write(bodyLeading, fmt.Sprintf("%d. ", b.Number))
			pdf.SetFont(fontFamily, "", 11)
			pdf.Write(bodyLeading, b.Text+" ")
			r.color(b.Difficulty.Color())
			pdf.SetFont(fontFamily, "B", 9)
			pdf.Write(bodyLeading, b.Tag)
			pdf.Ln(bodyLeading)
		})
		pdf.Ln(4)
	case KindNote:
		r.indented(noteIndent, func() {
			pdf.SetFont(fontFamily, "I", 10)
			r.color(mutedColor)
			pdf.MultiCell(0, 14, b.Text, "", "L", false)
		})
	case KindAnswer:
		r.color(textColor)
		pdf.SetFont(fontFamily, "B", 11)
		pdf.Write(bodyLeading, fmt.Sprintf("%d. ", b.Number))
		pdf.SetFont(fontFamily, "", 11)
		pdf.Write(bodyLeading, b.Text)
		pdf.Ln(bodyLeading)
		pdf.Ln(8)
	case KindSpace:
		pdf.Ln(b.Height)
	case KindPageBreak:
		pdf.AddPage()
	}
}

func (r *renderer) indented(by float64, fn func()) {
	left, _, _, _ := r.pdf.GetMargins()
	r.pdf.SetLeftMargin(left + by)
	r.pdf.SetX(left + by)
	fn()
	r.pdf.SetLeftMargin(left)
	r.pdf.SetX(left)
}
