package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"math"
	"strings"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// TripRequest is the user's trip description. It lives for one planning
// request and is never persisted.
type TripRequest struct {
	Departure   string `json:"departure" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date"`
	Activities  string `json:"activities"`
}

// FlightSearcher is satisfied by *SerpClient.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults int) ([]FlightOffer, error)
}

// TextGenerator is satisfied by *GeminiClient.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Planner produces itinerary text for a trip. Itinerary text is the main
// deliverable: PlanTrip always returns something displayable, converting
// every internal failure into an inline fragment instead of an error.
type Planner struct {
	flights FlightSearcher
	gen     TextGenerator
	logger  *slog.Logger
}

func NewPlanner(flights FlightSearcher, gen TextGenerator, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		flights: flights,
		gen:     gen,
		logger:  logger.WithGroup("planner"),
	}
}

// ─── Planning ─────────────────────────────────────────────────────────────────

const (
	noFlightsFragment = `<div class="p-4 bg-yellow-50 rounded-lg mb-6">
  <p class="text-yellow-700">No direct flights found for the specified route and dates. Consider checking nearby airports or alternative dates.</p>
</div>`

	flightsUnavailableFragment = `<div class="p-4 bg-yellow-50 rounded-lg mb-6">
  <p class="text-yellow-700">Unable to fetch real-time flight information. Please check airline websites directly for current flights and prices.</p>
</div>`
)

// PlanTrip generates itinerary text for the request. It cannot fail: the
// flight-enrichment step and the text-generation step are each wrapped in a
// local recovery branch that substitutes a displayable fragment.
func (p *Planner) PlanTrip(ctx context.Context, req TripRequest) string {
	flightInfo := p.flightEnrichment(ctx, req)

	prompt := BuildPrompt(req, flightInfo)

	text, err := p.gen.GenerateText(ctx, prompt)
	if err != nil {
		p.logger.Warn("itinerary generation failed", "error", err)
		return errorFragment(err)
	}
	return text
}

// flightEnrichment is best-effort: any failure, of any kind, degrades to a
// placeholder and never propagates to the caller.
func (p *Planner) flightEnrichment(ctx context.Context, req TripRequest) string {
	offers, err := p.flights.SearchFlights(ctx, req.Departure, req.Destination, req.StartDate, req.EndDate, 1)
	if err != nil {
		p.logger.Warn("flight enrichment failed", "error", err)
		return flightsUnavailableFragment
	}
	if len(offers) == 0 {
		return noFlightsFragment
	}
	// Upstream ordering is trusted: the first offer is the best one.
	return flightSummary(req, offers[0])
}

func flightSummary(req TripRequest, best FlightOffer) string {
	var b strings.Builder
	b.WriteString(`<div class="flight-info p-4 bg-blue-50 rounded-lg mb-6">` + "\n")
	b.WriteString(`  <h3 class="text-xl font-semibold text-blue-800 mb-3">Best Available Flight</h3>` + "\n")
	fmt.Fprintf(&b, `  <p class="mb-2"><strong>Route:</strong> %s to %s</p>`+"\n",
		html.EscapeString(req.Departure), html.EscapeString(req.Destination))
	fmt.Fprintf(&b, `  <p class="mb-2"><strong>Dates:</strong> %s - %s</p>`+"\n", req.StartDate, req.EndDate)
	if best.Price.Total != "" {
		fmt.Fprintf(&b, `  <p class="mb-2"><strong>Price:</strong> %s %s</p>`+"\n", best.Price.Total, best.Price.Currency)
	}
	if best.Airline != "" {
		fmt.Fprintf(&b, `  <p class="mb-2"><strong>Airline:</strong> %s</p>`+"\n", html.EscapeString(best.Airline))
	}
	if best.Duration != "" {
		fmt.Fprintf(&b, `  <p class="mb-2"><strong>Duration:</strong> %s</p>`+"\n", best.Duration)
	}
	if best.DepartureTime != "" {
		fmt.Fprintf(&b, `  <p class="mb-2"><strong>Departure:</strong> %s</p>`+"\n", best.DepartureTime)
	}
	if best.ArrivalTime != "" {
		fmt.Fprintf(&b, `  <p class="mb-2"><strong>Arrival:</strong> %s</p>`+"\n", best.ArrivalTime)
	}
	b.WriteString(`  <p class="text-sm text-blue-600 mt-4">* Please check airline websites for current prices and availability</p>` + "\n")
	b.WriteString(`</div>`)
	return b.String()
}

func errorFragment(err error) string {
	return fmt.Sprintf(`<div class="p-4 bg-red-50 border border-red-200 rounded-lg text-red-700">
  <p class="font-medium">Sorry, there was an error planning your trip:</p>
  <p class="mt-2">%s</p>
</div>`, html.EscapeString(err.Error()))
}

// ─── Prompt ───────────────────────────────────────────────────────────────────

// BuildPrompt assembles the generation prompt. It is a pure function of its
// inputs: identical requests always produce byte-identical prompts.
func BuildPrompt(req TripRequest, flightInfo string) string {
	days := TripDurationDays(req.StartDate, req.EndDate)

	return fmt.Sprintf(`I want to go from %s to %s between %s and %s (%d day(s)),
and while I'm there I'd love to %s.

Please provide a detailed itinerary that includes:
1. A day-by-day schedule with detailed activities and timing
2. Specific recommendations for the requested activities
3. Local transportation tips within the destination
4. Cultural considerations and local customs:
   - Important etiquette and behavior guidelines
   - Local traditions and customs to respect
   - Dress code recommendations
   - Dining customs and food etiquette
   - Common greetings and basic phrases
   - Cultural taboos to avoid

Format the response in clean, modern HTML with the following structure:

<div class="trip-plan">
  <h1 class="text-4xl font-bold mb-8 text-green-600">Your Trip to %s</h1>

  %s

  <section class="mb-12">
    <h2 class="text-2xl font-semibold mb-6 text-gray-800">Day-by-Day Schedule</h2>
    [Provide the daily schedule here with proper HTML structure]
  </section>

  <section class="mb-12">
    <h2 class="text-2xl font-semibold mb-6 text-gray-800">Activity Recommendations</h2>
    [Provide specific activity recommendations]
  </section>

  <section class="mb-12">
    <h2 class="text-2xl font-semibold mb-6 text-gray-800">Local Transportation Tips</h2>
    [Provide local transportation information]
  </section>

  <section class="mb-12">
    <h2 class="text-2xl font-semibold mb-6 text-gray-800">Cultural Considerations</h2>
    [Provide detailed cultural insights and customs]
  </section>
</div>

Use appropriate HTML tags for headings, paragraphs, lists and important
points, and keep each section itemized.`,
		req.Departure, req.Destination, req.StartDate, req.EndDate, days,
		req.Activities, req.Destination, flightInfo)
}

// TripDurationDays is the integer ceiling of (end - start) in days, with a
// floor of one day when the end date is missing or not after the start.
func TripDurationDays(startDate, endDate string) int {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 1
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 1
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
