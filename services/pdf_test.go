package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePDFBytes(t *testing.T) {
	pdfBytes, err := GeneratePDFBytes(PDFData{
		TravelerName: "Ada",
		Departure:    "London",
		Destination:  "New York",
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-10",
		Days:         9,
		Flight: &FlightOffer{
			Airline:  "British Airways",
			Price:    Price{Total: "450.00", Currency: "USD"},
			Duration: "7h 45m",
		},
		Itinerary: `<div class="trip-plan"><h1>Your Trip to New York</h1><p>Day 1: museums</p></div>`,
	})

	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGeneratePDFBytes_NoFlight(t *testing.T) {
	pdfBytes, err := GeneratePDFBytes(PDFData{
		Departure:   "Berlin",
		Destination: "Rome",
		StartDate:   "2025-07-01",
		EndDate:     "2025-07-04",
		Days:        3,
		Itinerary:   "plain text itinerary",
	})

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestStripHTML(t *testing.T) {
	in := "<div>\n  <h1>Title</h1>\n  <p>Line one</p>\n</div>"
	assert.Equal(t, "Title\nLine one", stripHTML(in))
}
