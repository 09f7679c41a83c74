package handlers

import (
	"net/http"

	"tripplanner/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanResponse struct {
	Itinerary string `json:"itinerary"`
}

// Plan generates itinerary text for a trip. The planner cannot fail, so any
// upstream trouble already arrives folded into the itinerary markup.
func (a *API) Plan(c *gin.Context) {
	var req services.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	itinerary := a.Planner.PlanTrip(c.Request.Context(), req)
	c.JSON(http.StatusOK, PlanResponse{Itinerary: itinerary})
}

type PlanPDFRequest struct {
	services.TripRequest
	TravelerName string `json:"traveler_name"`
}

// PlanPDF plans the trip and streams the result as a downloadable PDF.
// Nothing is stored; re-requesting regenerates the document.
func (a *API) PlanPDF(c *gin.Context) {
	var req PlanPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	itinerary := a.Planner.PlanTrip(c.Request.Context(), req.TripRequest)

	// Best-effort: a missing flight just leaves the section out of the PDF.
	var best *services.FlightOffer
	if offers, err := a.Search.SearchFlights(c.Request.Context(),
		req.Departure, req.Destination, req.StartDate, req.EndDate, 1); err == nil && len(offers) > 0 {
		best = &offers[0]
	}

	pdfBytes, err := services.GeneratePDFBytes(services.PDFData{
		TravelerName: req.TravelerName,
		Departure:    req.Departure,
		Destination:  req.Destination,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Days:         services.TripDurationDays(req.StartDate, req.EndDate),
		Flight:       best,
		Itinerary:    itinerary,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("X-Itinerary-ID", uuid.New().String())
	c.Header("Content-Disposition", "attachment; filename=trip-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
