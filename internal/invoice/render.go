// Package invoice renders the two-page tax invoice PDF attached to order
// confirmations. Rendering is a pure function of the order and the supplied
// clock, so the worker can regenerate an identical document from the persisted
// record.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/optistyle/core-engine/internal/orders"
)

// taxRate is the GST rate baked into listed prices. Prices are tax-inclusive:
// the invoice works backwards from the grand total.
const taxRate = 0.18

var (
	colorPrimary = rgb{14, 165, 233}  // sky
	colorAccent  = rgb{6, 182, 212}   // cyan
	colorDark    = rgb{2, 6, 23}      // slate-950
	colorMuted   = rgb{100, 116, 139} // slate-500
	colorPanel   = rgb{248, 250, 252} // slate-50
	colorRule    = rgb{226, 232, 240} // slate-200
	colorFooter  = rgb{148, 163, 184} // slate-400
	colorTerms   = rgb{71, 85, 105}   // slate-600
)

type rgb struct{ r, g, b int }

var termsAndConditions = []string{
	"1. Goods once sold cannot be returned or exchanged unless a manufacturing defect is identified within 7 days of delivery.",
	"2. Prescription accuracy is the sole responsibility of the customer. OptiStyle is not liable for issues arising from incorrect user-provided data.",
	"3. Standard warranty of 6 months applies to frames against plating peel-off and manufacturing flaws.",
	"4. Lens scratches occurring after 24 hours of delivery are not covered under warranty.",
	"5. All taxes are applied as per the prevalent GST rules of the Government of India.",
	"6. Any disputes are subject to the exclusive jurisdiction of the courts in Datia, MP.",
	"7. Delivery timelines are estimates and may vary based on courier availability and regional restrictions.",
}

// Totals splits a tax-inclusive grand total into subtotal and tax.
func Totals(totalAmount float64) (subtotal, tax float64) {
	subtotal = totalAmount / (1 + taxRate)
	tax = totalAmount - subtotal
	return subtotal, tax
}

// Filename returns the attachment/object name for an invoice.
func Filename(invoiceNumber string) string {
	return fmt.Sprintf("Invoice_%s.pdf", invoiceNumber)
}

// Render produces the invoice PDF for an enriched order. The same order and
// clock always yield identical bytes.
func Render(o orders.Order, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetAutoPageBreak(false, 0)

	renderInvoicePage(pdf, o, now)
	renderTermsPage(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderInvoicePage(pdf *fpdf.Fpdf, o orders.Order, now time.Time) {
	pdf.AddPage()

	// Header band
	fill(pdf, colorDark)
	pdf.Rect(0, 0, 210, 42, "F")
	text(pdf, colorPanel)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(18, 20, "OptiStyle")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(18, 29, "Premium Eye Care & Eyewear")
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(137, 25, "TAX INVOICE")

	// Seller and customer blocks
	text(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(18, 55, "SELLER DETAILS")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(18, 61, "OptiStyle Optical Hub")
	pdf.Text(18, 66, "Gahoi Colony, Near Vatika")
	pdf.Text(18, 71, "Datia, MP - 475661, India")
	pdf.Text(18, 76, "Email: support@optistyle.in")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(125, 55, "BILL TO")
	pdf.SetFont("Helvetica", "", 10)
	name := o.CustomerName
	if name == "" {
		name = "Valued Customer"
	}
	address := o.Address
	if address == "" {
		address = "Online Order"
	}
	pdf.Text(125, 61, name)
	pdf.Text(125, 66, o.UserEmail)
	pdf.Text(125, 71, address)

	// Metadata band
	fill(pdf, colorPanel)
	pdf.Rect(18, 85, 174, 14, "F")
	text(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(22, 90, "INVOICE NO")
	pdf.Text(75, 90, "ORDER ID")
	pdf.Text(160, 90, "DATE")
	pdf.SetFont("Helvetica", "", 9)
	text(pdf, colorPrimary)
	pdf.Text(22, 96, o.InvoiceNumber)
	text(pdf, colorDark)
	pdf.Text(75, 96, o.OrderID)
	pdf.Text(160, 96, now.Format("02/01/2006"))

	// Line item table header
	y := 106.0
	fill(pdf, colorPrimary)
	pdf.Rect(18, y, 174, 9, "F")
	text(pdf, colorPanel)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(22, y+6, "PRODUCT")
	pdf.Text(120, y+6, "QTY")
	pdf.Text(140, y+6, "UNIT PRICE")
	pdf.Text(172, y+6, "TOTAL")

	// Line item rows
	y += 15
	for _, p := range o.Products {
		text(pdf, colorDark)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(22, y, p.Name)
		color := p.Color
		if color == "" {
			color = "Standard"
		}
		text(pdf, colorMuted)
		pdf.SetFont("Helvetica", "", 8)
		pdf.Text(22, y+4.5, fmt.Sprintf("Frame: %s | Lens: Blue-Cut Digital", color))
		text(pdf, colorDark)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(122, y, fmt.Sprintf("%d", p.Quantity))
		pdf.Text(140, y, inr(p.Price))
		pdf.Text(168, y, inr(p.Price*float64(p.Quantity)))
		y += 14
	}

	// Totals block
	y += 4
	draw(pdf, colorRule)
	pdf.Line(18, y, 192, y)
	y += 8
	subtotal, tax := Totals(o.TotalAmount)
	text(pdf, colorDark)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(128, y, "Subtotal:")
	pdf.Text(160, y, inr(subtotal))
	y += 7
	pdf.Text(128, y, "GST (18%):")
	pdf.Text(160, y, inr(tax))
	y += 10
	fill(pdf, colorAccent)
	pdf.Rect(118, y-6, 74, 14, "F")
	text(pdf, colorPanel)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Text(122, y+2, "Grand Total:")
	pdf.Text(158, y+2, inr(o.TotalAmount))

	// Footer
	text(pdf, colorFooter)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(18, 270)
	pdf.CellFormat(174, 4, "This is a system-generated tax invoice and does not require a physical signature.", "", 1, "C", false, 0, "")
	pdf.SetX(18)
	pdf.CellFormat(174, 4, "Thank you for choosing OptiStyle - Your Vision, Our Commitment.", "", 1, "C", false, 0, "")
}

func renderTermsPage(pdf *fpdf.Fpdf) {
	pdf.AddPage()

	text(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(18, 25, "Terms & Conditions")
	fill(pdf, colorPrimary)
	pdf.Rect(18, 29, 14, 1.2, "F")

	text(pdf, colorTerms)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetY(40)
	for _, term := range termsAndConditions {
		pdf.SetX(18)
		pdf.MultiCell(174, 6, term, "", "L", false)
		pdf.Ln(4)
	}
}

func inr(v float64) string { return fmt.Sprintf("INR %.2f", v) }

func fill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func text(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func draw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
