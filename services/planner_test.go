package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	offers []FlightOffer
	err    error
	calls  int
}

func (f *fakeSearcher) SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults int) ([]FlightOffer, error) {
	f.calls++
	return f.offers, f.err
}

type fakeGenerator struct {
	prompts []string
	out     string
	err     error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

func sampleRequest() TripRequest {
	return TripRequest{
		Departure:   "London",
		Destination: "New York",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-10",
		Activities:  "museums",
	}
}

func TestPlanTrip_PromptIsPure(t *testing.T) {
	search := &fakeSearcher{offers: []FlightOffer{{
		Airline: "British Airways",
		Price:   Price{Total: "450.00", Currency: "USD"},
	}}}
	gen := &fakeGenerator{out: "fixed completion"}
	p := NewPlanner(search, gen, nil)

	first := p.PlanTrip(context.Background(), sampleRequest())
	second := p.PlanTrip(context.Background(), sampleRequest())

	assert.Equal(t, "fixed completion", first)
	assert.Equal(t, first, second)
	require.Len(t, gen.prompts, 2)
	assert.Equal(t, gen.prompts[0], gen.prompts[1], "identical requests must submit byte-identical prompts")
}

func TestPlanTrip_EmbedsFlightPriceInPrompt(t *testing.T) {
	search := &fakeSearcher{offers: []FlightOffer{{
		Airline:  "British Airways",
		Price:    Price{Total: "450.00", Currency: "USD"},
		Duration: "7h 45m",
	}}}
	gen := &fakeGenerator{out: "itinerary"}
	p := NewPlanner(search, gen, nil)

	p.PlanTrip(context.Background(), sampleRequest())

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Best Available Flight")
	assert.Contains(t, prompt, "450.00")
	assert.Contains(t, prompt, "USD")
	assert.Contains(t, prompt, "British Airways")
}

// echoGenerator plays the model's part: it reproduces the prompt, the way
// the real model is instructed to reproduce the embedded flight fragment.
type echoGenerator struct{}

func (echoGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return prompt, nil
}

func TestPlanTrip_ItineraryCarriesFlightPrice(t *testing.T) {
	search := &fakeSearcher{offers: []FlightOffer{{
		Price: Price{Total: "450.00", Currency: "USD"},
	}}}
	p := NewPlanner(search, echoGenerator{}, nil)

	got := p.PlanTrip(context.Background(), sampleRequest())

	assert.Contains(t, got, "450.00")
	assert.Contains(t, got, "USD")
}

func TestPlanTrip_SwallowsSearchFailure(t *testing.T) {
	search := &fakeSearcher{err: &TransportError{StatusCode: 500}}
	gen := &fakeGenerator{out: "itinerary anyway"}
	p := NewPlanner(search, gen, nil)

	got := p.PlanTrip(context.Background(), sampleRequest())

	assert.Equal(t, "itinerary anyway", got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Unable to fetch real-time flight information")
}

func TestPlanTrip_EmptyFlightsUsesPlaceholder(t *testing.T) {
	search := &fakeSearcher{offers: nil}
	gen := &fakeGenerator{out: "itinerary"}
	p := NewPlanner(search, gen, nil)

	p.PlanTrip(context.Background(), sampleRequest())

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "No direct flights found")
}

func TestPlanTrip_GenerationFailureStillReturnsText(t *testing.T) {
	search := &fakeSearcher{offers: nil}
	gen := &fakeGenerator{err: errors.New("model unreachable")}
	p := NewPlanner(search, gen, nil)

	got := p.PlanTrip(context.Background(), sampleRequest())

	assert.Contains(t, got, "error planning your trip")
	assert.Contains(t, got, "model unreachable")
}

func TestPlanTrip_ValidationFailureSwallowed(t *testing.T) {
	// A departure city too short to derive a code must not fail the plan.
	search := &fakeSearcher{err: &ValidationError{Reason: ReasonInvalidLocationCode, Message: "bad code"}}
	gen := &fakeGenerator{out: "itinerary"}
	p := NewPlanner(search, gen, nil)

	got := p.PlanTrip(context.Background(), TripRequest{
		Departure:   "Al",
		Destination: "Rome",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
	})

	assert.Equal(t, "itinerary", got)
	assert.Equal(t, 1, search.calls)
}

func TestBuildPrompt_StructuredSections(t *testing.T) {
	prompt := BuildPrompt(sampleRequest(), "FLIGHT-FRAGMENT")

	assert.Contains(t, prompt, "day-by-day schedule")
	assert.Contains(t, prompt, "Local transportation tips")
	assert.Contains(t, prompt, "Cultural considerations")
	assert.Contains(t, prompt, "FLIGHT-FRAGMENT")
	assert.Contains(t, prompt, "museums")

	// The enrichment fragment sits near the top of the HTML skeleton,
	// right after the title heading.
	title := strings.Index(prompt, "Your Trip to New York</h1>")
	fragment := strings.Index(prompt, "FLIGHT-FRAGMENT")
	require.True(t, title >= 0 && fragment > title)
}

func TestTripDurationDays(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"nine days", "2025-06-01", "2025-06-10", 9},
		{"same day", "2025-06-01", "2025-06-01", 1},
		{"no end date", "2025-06-01", "", 1},
		{"end before start", "2025-06-10", "2025-06-01", 1},
		{"unparseable start", "soon", "2025-06-10", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TripDurationDays(tc.start, tc.end))
		})
	}
}
