package eyetest

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// EyeLog is one eye's raw staircase run, submitted when the client leaves
// scoring to the server.
type EyeLog struct {
	Mode     Mode      `json:"mode"`
	Attempts []Attempt `json:"attempts"`
}

// ReportRequest carries everything the printable screening report shows.
// Per-eye data is optional and comes in either form: a precomputed Result, or
// a raw attempt log to be scored here. A Result wins over a log for the same
// eye; without either the report only lists the summary fields the storefront
// submitted.
type ReportRequest struct {
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	NearVision string  `json:"nearVision"`
	FarVision  string  `json:"farVision"`
	Left       *Result `json:"left,omitempty"`
	Right      *Result `json:"right,omitempty"`
	LeftLog    *EyeLog `json:"leftLog,omitempty"`
	RightLog   *EyeLog `json:"rightLog,omitempty"`
}

// RenderReport produces the eye-test report PDF.
func RenderReport(req ReportRequest, now time.Time) ([]byte, error) {
	if req.Left == nil && req.LeftLog != nil {
		r := Evaluate(req.LeftLog.Mode, req.LeftLog.Attempts)
		req.Left = &r
	}
	if req.Right == nil && req.RightLog != nil {
		r := Evaluate(req.RightLog.Mode, req.RightLog.Attempts)
		req.Right = &r
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(0, 0, 210, 50, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(20, 28, "OptiStyle Vision Analytics")
	pdf.SetTextColor(6, 182, 212)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(20, 40, "CERTIFIED DIGITAL OCULAR SCREENING PROTOCOL V4.2")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 8)
	reportID := fmt.Sprintf("OPT-%08d", now.Unix()%100000000)
	pdf.Text(150, 28, "REPORT ID: "+reportID)
	pdf.Text(150, 33, "TIMESTAMP: "+now.Format("02/01/2006 15:04"))

	// Subject block
	y := 65.0
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(20, y, "1. SUBJECT DETAILS")
	y += 8
	pdf.SetFillColor(241, 245, 249)
	pdf.Rect(20, y, 170, 28, "F")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(71, 85, 105)
	pdf.Text(25, y+9, fmt.Sprintf("Name: %s", req.Name))
	pdf.Text(25, y+18, fmt.Sprintf("Age: %d", req.Age))
	pdf.Text(105, y+9, fmt.Sprintf("Near Vision: %s", req.NearVision))
	pdf.Text(105, y+18, fmt.Sprintf("Far Vision: %s", req.FarVision))
	y += 42

	// Per-eye profile, when the staircase logs were submitted
	if req.Left != nil || req.Right != nil {
		pdf.SetTextColor(15, 23, 42)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(20, y, "2. DETERMINED VISUAL PROFILE")
		y += 8
		if req.Left != nil {
			renderEyeBox(pdf, 20, y, "LEFT EYE (OS)", *req.Left)
		}
		if req.Right != nil {
			renderEyeBox(pdf, 108, y, "RIGHT EYE (OD)", *req.Right)
		}
		y += 70
	}

	// Disclaimer
	pdf.SetTextColor(148, 163, 184)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(20, 270)
	pdf.MultiCell(170, 4,
		"This screening is indicative only and is not a substitute for a clinical examination by a qualified optometrist.",
		"", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render eye test pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderEyeBox(pdf *fpdf.Fpdf, x, y float64, title string, r Result) {
	pdf.SetFillColor(241, 245, 249)
	pdf.Rect(x, y, 82, 62, "F")
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x+5, y+9, title)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)
	pdf.Text(x+5, y+18, "Acuity: "+r.Acuity)
	pdf.Text(x+5, y+26, "Power Range: "+r.PowerRange)
	pdf.Text(x+5, y+34, "Confidence: "+r.Confidence)
	pdf.Text(x+5, y+42, fmt.Sprintf("Accuracy: %.1f%%", r.AccuracyRate))
	pdf.Text(x+5, y+50, fmt.Sprintf("Consistency: %.1f%%", r.ConsistencyScore))
	pdf.Text(x+5, y+58, fmt.Sprintf("Avg Response: %.0f ms", r.AvgResponseTime))
}
