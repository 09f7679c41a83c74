package handlers

import (
	"net/http"

	"tripplanner/services"

	"github.com/gin-gonic/gin"
)

type FlightSearchRequest struct {
	Origin        string `json:"origin" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
	ReturnDate    string `json:"return_date" binding:"required"`
	Passengers    int    `json:"passengers"`
}

type FlightSearchResponse struct {
	Flights []services.FlightOffer `json:"flights"`
}

// Flights serves the flight result panel. Unlike the planner it propagates
// every failure: the frontend renders them as an inline error banner.
func (a *API) Flights(c *gin.Context) {
	var req FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	flights, err := a.Search.SearchFlights(c.Request.Context(),
		req.Origin, req.Destination, req.DepartureDate, req.ReturnDate, req.Passengers)
	if err != nil {
		searchError(c, err)
		return
	}
	if flights == nil {
		flights = []services.FlightOffer{}
	}

	c.JSON(http.StatusOK, FlightSearchResponse{Flights: flights})
}

type HotelSearchRequest struct {
	Destination  string `json:"destination" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
	Adults       int    `json:"adults"`
	RadiusKM     int    `json:"radius_km"`
	Ratings      []int  `json:"ratings"`
}

type HotelSearchResponse struct {
	Hotels []services.HotelOffer `json:"hotels"`
}

func (a *API) Hotels(c *gin.Context) {
	var req HotelSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	hotels, err := a.Search.SearchHotels(c.Request.Context(), services.HotelQuery{
		Destination: req.Destination,
		CheckIn:     req.CheckInDate,
		CheckOut:    req.CheckOutDate,
		Adults:      req.Adults,
		RadiusKM:    req.RadiusKM,
		Ratings:     req.Ratings,
	})
	if err != nil {
		searchError(c, err)
		return
	}
	if hotels == nil {
		hotels = []services.HotelOffer{}
	}

	c.JSON(http.StatusOK, HotelSearchResponse{Hotels: hotels})
}
