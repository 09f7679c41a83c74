package handlers

import (
	"context"
	"errors"
	"net/http"

	"tripplanner/services"

	"github.com/gin-gonic/gin"
)

// TravelSearcher is the search surface the handlers need; satisfied by
// *services.SerpClient.
type TravelSearcher interface {
	SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults int) ([]services.FlightOffer, error)
	SearchHotels(ctx context.Context, q services.HotelQuery) ([]services.HotelOffer, error)
}

// TripPlanner is satisfied by *services.Planner.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req services.TripRequest) string
}

// API bundles the orchestrators behind the HTTP surface. Handlers are
// stateless; every request performs a fresh upstream query.
type API struct {
	Search  TravelSearcher
	Planner TripPlanner
}

func NewAPI(search TravelSearcher, planner TripPlanner) *API {
	return &API{Search: search, Planner: planner}
}

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tripplanner",
	})
}

// searchError maps the service error taxonomy onto HTTP statuses: request
// mistakes are the client's fault, upstream trouble is a bad gateway.
func searchError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "reason": vErr.Reason})
		return
	}
	var uErr *services.UpstreamError
	if errors.As(err, &uErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": uErr.Message})
		return
	}
	var tErr *services.TransportError
	if errors.As(err, &tErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": tErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
