package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"travelpro/travelers"
)

type PlanData struct {
	PreparedFor string
	Travelers   []travelers.Traveler
	Itinerary   *Itinerary
	Budget      *BudgetBreakdown
	GeneratedAt time.Time
}

// GeneratePlanPDF renders the itinerary and budget as PDF bytes.
func GeneratePlanPDF(data PlanData) ([]byte, error) {
	if data.Itinerary == nil || data.Budget == nil {
		return nil, ValidationError{Msg: "itinerary and budget are required to render a plan"}
	}
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Travel Pro", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr("Trip plan: "+data.Itinerary.Destination), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 10, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4, "This is NOT a booking confirmation. All prices are estimates in USD and subject to change.", "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	// ── Travelers ─────────────────────────────────────────────
	sectionHeader("Travelers")
	name := data.PreparedFor
	if name == "" {
		name = "Guest Traveler"
	}
	row("Prepared for", name)
	row("Generated", data.GeneratedAt.Format("02 Jan 2006, 15:04"))
	for _, t := range data.Travelers {
		row(fmt.Sprintf("#%d", t.ID), fmt.Sprintf("%s, %d (%s)", t.Name, t.Age, t.Category))
	}
	pdf.Ln(4)

	// ── Itinerary ─────────────────────────────────────────────
	sectionHeader(fmt.Sprintf("Itinerary (%d days, %s tier)", len(data.Itinerary.Days), data.Itinerary.Tier))
	for _, d := range data.Itinerary.Days {
		row(fmt.Sprintf("Day %d - %s", d.DayNumber, d.Role),
			fmt.Sprintf("%s ($%.0f/person)", strings.Join(d.Activities, ", "), d.EstimatedCostPerPerson))
	}
	pdf.Ln(4)

	// ── Cost Summary ──────────────────────────────────────────
	bd := data.Budget
	sectionHeader("Cost Estimate")
	row("Flights", fmt.Sprintf("$%.0f", bd.Flights))
	row(fmt.Sprintf("Lodging (%d nights)", bd.Days), fmt.Sprintf("$%.0f", bd.Lodging))
	row("Food", fmt.Sprintf("$%.0f", bd.Food))
	row("Activities", fmt.Sprintf("$%.0f", bd.Activities))
	row("Local transport", fmt.Sprintf("$%.0f", bd.Transport))
	row("Other", fmt.Sprintf("$%.0f", bd.Incidentals))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.0f ($%.0f per person)", bd.Total, bd.PerPerson), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "Generated by Travel Pro - Not a booking confirmation - Prices subject to change",
		"", 0, "C", false, 0, "")

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
