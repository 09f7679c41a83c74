package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// FlightSegment is one non-stop hop within a leg.
type FlightSegment struct {
	CarrierCode      string `json:"carrier_code,omitempty"`
	FlightNumber     string `json:"flight_number,omitempty"`
	DepartureAirport string `json:"departure_airport,omitempty"`
	DepartureTime    string `json:"departure_time,omitempty"`
	ArrivalAirport   string `json:"arrival_airport,omitempty"`
	ArrivalTime      string `json:"arrival_time,omitempty"`
}

// FlightLeg is one directional journey: outbound or return.
type FlightLeg struct {
	Duration string          `json:"duration,omitempty"`
	Segments []FlightSegment `json:"segments,omitempty"`
}

// FlightOffer is one normalized flight search result. Offers keep whatever
// order the upstream API returned them in; no ranking happens here.
type FlightOffer struct {
	DepartureID   string      `json:"departure_id,omitempty"`
	ArrivalID     string      `json:"arrival_id,omitempty"`
	Airline       string      `json:"airline,omitempty"`
	Price         Price       `json:"price"`
	Duration      string      `json:"duration,omitempty"`
	DepartureTime string      `json:"departure_time,omitempty"`
	ArrivalTime   string      `json:"arrival_time,omitempty"`
	Legs          []FlightLeg `json:"legs,omitempty"`
}

type HotelRate struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// HotelOffer is a hotel plus zero or more rate offers.
type HotelOffer struct {
	Name  string      `json:"name"`
	Rates []HotelRate `json:"offers,omitempty"`
}

// HotelQuery carries hotel search parameters. Ratings and RadiusKM are
// forwarded upstream as-is; results are never filtered client-side.
type HotelQuery struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Adults      int
	RadiusKM    int
	Ratings     []int
}

// ─── SerpAPI Client ───────────────────────────────────────────────────────────

const (
	serpBaseURL       = "https://serpapi.com/search.json"
	serpSearchTimeout = 30 * time.Second
	dateLayout        = "2006-01-02"
)

type SerpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

func NewSerpClient(apiKey string, logger *slog.Logger) (*SerpClient, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Key: "SERP_API_KEY"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SerpClient{
		apiKey:  apiKey,
		baseURL: serpBaseURL,
		httpClient: &http.Client{
			Timeout: serpSearchTimeout,
		},
		logger: logger.WithGroup("serpapi"),
		now:    time.Now,
	}, nil
}

// DeriveLocationCode turns free-text input into a 3-letter code by
// uppercasing the first three characters. This is a documented heuristic,
// not a real airport-code lookup; inputs that already are IATA codes pass
// through unchanged.
func DeriveLocationCode(input string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) < 3 {
		return "", &ValidationError{
			Reason:  ReasonInvalidLocationCode,
			Message: fmt.Sprintf("cannot derive a 3-letter location code from %q", input),
		}
	}
	return s[:3], nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlights validates the trip parameters and queries the flight search
// engine. Validation failures never issue a network call. An empty result
// set is returned as an empty list, not an error; the caller decides how to
// present "no flights found".
func (c *SerpClient) SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults int) ([]FlightOffer, error) {
	originCode, err := DeriveLocationCode(origin)
	if err != nil {
		return nil, err
	}
	destCode, err := DeriveLocationCode(destination)
	if err != nil {
		return nil, err
	}

	depDate, err := time.Parse(dateLayout, departureDate)
	if err != nil {
		return nil, &ValidationError{
			Reason:  ReasonInvalidDateFormat,
			Message: "invalid departure date format, use YYYY-MM-DD",
		}
	}
	retDate, err := time.Parse(dateLayout, returnDate)
	if err != nil {
		return nil, &ValidationError{
			Reason:  ReasonInvalidDateFormat,
			Message: "invalid return date format, use YYYY-MM-DD",
		}
	}

	today := c.today()
	if depDate.Before(today) {
		return nil, &ValidationError{
			Reason:  ReasonPastDepartureDate,
			Message: "departure date cannot be in the past",
		}
	}
	if retDate.Before(depDate) {
		return nil, &ValidationError{
			Reason:  ReasonReturnBeforeDeparture,
			Message: "return date must be after departure date",
		}
	}

	if adults <= 0 {
		adults = 1
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", originCode)
	params.Set("arrival_id", destCode)
	params.Set("outbound_date", departureDate)
	params.Set("return_date", returnDate)
	params.Set("adults", strconv.Itoa(adults))
	params.Set("currency", "USD")
	params.Set("hl", "en")
	params.Set("gl", "us")

	var resp struct {
		Error          string        `json:"error"`
		FlightsResults []FlightOffer `json:"flights_results"`
	}
	if err := c.doSearch(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &UpstreamError{Message: resp.Error}
	}

	if len(resp.FlightsResults) == 0 {
		c.logger.Info("no flights found", "origin", originCode, "destination", destCode)
	}
	return resp.FlightsResults, nil
}

// ─── Hotel Search ─────────────────────────────────────────────────────────────

// SearchHotels queries the hotel search engine with a natural-language
// query of the form "hotels in {destination}". Same error taxonomy as
// SearchFlights; an empty result set is an empty list, not an error.
func (c *SerpClient) SearchHotels(ctx context.Context, q HotelQuery) ([]HotelOffer, error) {
	if q.Adults <= 0 {
		q.Adults = 1
	}
	if q.RadiusKM <= 0 {
		q.RadiusKM = 5
	}
	if len(q.Ratings) == 0 {
		q.Ratings = []int{3, 4, 5}
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", "hotels in "+q.Destination)
	params.Set("check_in_date", q.CheckIn)
	params.Set("check_out_date", q.CheckOut)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currency", "USD")
	params.Set("radius", strconv.Itoa(q.RadiusKM))
	params.Set("hotel_class", joinInts(q.Ratings))

	var resp struct {
		Error         string       `json:"error"`
		HotelsResults []HotelOffer `json:"hotels_results"`
	}
	if err := c.doSearch(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &UpstreamError{Message: resp.Error}
	}

	if len(resp.HotelsResults) == 0 {
		c.logger.Info("no hotels found", "destination", q.Destination)
	}
	return resp.HotelsResults, nil
}

// ─── Transport ────────────────────────────────────────────────────────────────

func (c *SerpClient) doSearch(ctx context.Context, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse search response: %w", err)
	}
	return nil
}

// today truncates the clock to a calendar date so that a departure later
// the same day is not treated as past.
func (c *SerpClient) today() time.Time {
	n := c.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func joinInts(vals []int) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}
