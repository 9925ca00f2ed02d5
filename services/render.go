package services

import (
	"fmt"
	"strings"

	"travelpro/travelers"
)

// Text renderings of tool results. The orchestrator shows these verbatim.

func RenderTravelers(list []travelers.Traveler, counts map[travelers.Category]int) string {
	if len(list) == 0 {
		return "👥 No travelers registered yet"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 Registered travelers (%d total)\n", len(list))
	fmt.Fprintf(&b, "   Adults: %d | Children: %d | Infants: %d\n\n",
		counts[travelers.Adult], counts[travelers.Child], counts[travelers.Infant])
	for _, t := range list {
		fmt.Fprintf(&b, "%s %s - %d years (%s)\n", travelerEmoji(t.Category), t.Name, t.Age, t.Category)
	}
	return b.String()
}

func travelerEmoji(c travelers.Category) string {
	switch c {
	case travelers.Infant:
		return "👶"
	case travelers.Child:
		return "🧒"
	default:
		return "👨"
	}
}

func RenderFares(r *FareSearchResult) string {
	var b strings.Builder

	kind := "ONE-WAY"
	if r.RoundTrip {
		kind = "ROUND TRIP"
	}
	label := "LIVE FARES"
	if r.Source == SourceEstimated {
		label = "ESTIMATED FARES"
	}

	fmt.Fprintf(&b, "✈️ %s - %s\n", label, kind)
	fmt.Fprintf(&b, "📍 %s (%s) → %s (%s)\n", r.OriginCity, r.OriginCode, r.DestinationCity, r.DestinationCode)
	fmt.Fprintf(&b, "📅 Depart: %s", r.DepartDate)
	if r.RoundTrip {
		fmt.Fprintf(&b, " | Return: %s", r.ReturnDate)
	}
	fmt.Fprintf(&b, "\n👥 Travelers: %d adult(s), %d child(ren), %d infant(s)\n\n",
		r.Travelers.Adults, r.Travelers.Children, r.Travelers.Infants)
	if r.Source == SourceEstimated {
		b.WriteString("⚠️ Live prices unavailable, showing estimates\n\n")
	}

	for i, o := range r.Offers {
		fmt.Fprintf(&b, "🛫 Option %d: %s", i+1, o.Carrier)
		if o.CarrierCode != "" && o.CarrierCode != o.Carrier {
			fmt.Fprintf(&b, " (%s)", o.CarrierCode)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "   ⏰ Departs: %s", o.DepartureTime)
		if o.ArrivalTime != "" {
			fmt.Fprintf(&b, " | Arrives: %s", o.ArrivalTime)
		}
		fmt.Fprintf(&b, " | Stops: %d | Duration: %s\n", o.Stops, o.Duration)
		fmt.Fprintf(&b, "   💰 Per adult: %.2f %s\n", o.PricePerAdult, o.Currency)
		if r.Travelers.Children > 0 {
			fmt.Fprintf(&b, "   🧒 Children (%d): %.2f %s\n", r.Travelers.Children, o.ChildrenTotal, o.Currency)
		}
		if r.Travelers.Infants > 0 {
			fmt.Fprintf(&b, "   👶 Infants (%d): %.2f %s\n", r.Travelers.Infants, o.InfantsTotal, o.Currency)
		}
		fmt.Fprintf(&b, "   💵 GROUP TOTAL: %.2f %s\n\n", o.GroupTotal, o.Currency)
	}

	b.WriteString("🔗 BOOKING LINKS:\n")
	for _, l := range r.Links {
		fmt.Fprintf(&b, "🌐 %s: %s\n", l.Provider, l.URL)
	}
	return b.String()
}

func RenderDestination(d *DestinationBrief) string {
	var b strings.Builder
	if d.Description != "" {
		fmt.Fprintf(&b, "📍 %s\n\nℹ️ %s\n\n", d.Title, d.Description)
	}
	if d.Country != "" || d.Climate != "" {
		b.WriteString("📊 KEY FACTS:\n")
		if d.Country != "" {
			fmt.Fprintf(&b, "🌍 Country: %s\n", d.Country)
		}
		if d.Population != nil {
			fmt.Fprintf(&b, "👥 Population: %s\n", groupThousands(*d.Population))
		}
		if d.Climate != "" {
			fmt.Fprintf(&b, "🌡️ Climate: %s\n", d.Climate)
		}
	}
	return b.String()
}

func RenderSeasonal(p *SeasonalPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓️ Recommendations for %s in %s\n", p.Destination, p.Month)
	fmt.Fprintf(&b, "🌐 Hemisphere: %s\n\n", p.Hemisphere)
	fmt.Fprintf(&b, "SEASON: %s\nRecommended activities:\n", strings.ToUpper(string(p.Season)))
	for _, a := range p.Activities {
		fmt.Fprintf(&b, "• %s\n", a)
	}
	fmt.Fprintf(&b, "\n💡 Tip: %s\n", p.Tip)
	return b.String()
}

func RenderItinerary(it *Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %d-DAY ITINERARY IN %s\n", len(it.Days), strings.ToUpper(it.Destination))
	fmt.Fprintf(&b, "💰 Budget: %s\n👥 Travelers: %d\n\n", it.Tier, it.Travelers)

	for _, d := range it.Days {
		fmt.Fprintf(&b, "📆 DAY %d (%s):\n", d.DayNumber, d.Role)
		for _, a := range d.Activities {
			fmt.Fprintf(&b, "   • %s\n", a)
		}
		fmt.Fprintf(&b, "   💵 Estimated spend: $%.0f USD/person\n\n", d.EstimatedCostPerPerson)
	}

	b.WriteString("💰 SUMMARY:\n")
	fmt.Fprintf(&b, "   Per person: $%.0f USD\n", it.PerPersonTotal)
	fmt.Fprintf(&b, "   Group total (%d): $%.0f USD\n", it.Travelers, it.GroupTotal)
	b.WriteString("\n📝 Approximate prices, flights and lodging not included\n")
	return b.String()
}

func RenderBudget(bd *BudgetBreakdown) string {
	people := bd.Travelers.Total()

	var b strings.Builder
	fmt.Fprintf(&b, "💰 ESTIMATED BUDGET - %s\n", strings.ToUpper(bd.Destination))
	fmt.Fprintf(&b, "📊 Tier: %s\n📅 Duration: %d days\n👥 Travelers: %d\n\n", bd.Tier, bd.Days, people)
	b.WriteString("📋 BREAKDOWN:\n")
	fmt.Fprintf(&b, "✈️  Flights (round trip): $%.0f USD\n", bd.Flights)
	fmt.Fprintf(&b, "🏨 Lodging (%d nights): $%.0f USD\n", bd.Days, bd.Lodging)
	fmt.Fprintf(&b, "🍽️  Food: $%.0f USD\n", bd.Food)
	fmt.Fprintf(&b, "🎭 Activities: $%.0f USD\n", bd.Activities)
	fmt.Fprintf(&b, "🚕 Local transport: $%.0f USD\n", bd.Transport)
	fmt.Fprintf(&b, "🛍️  Other: $%.0f USD\n", bd.Incidentals)
	fmt.Fprintf(&b, "\n%s\n", strings.Repeat("=", 40))
	fmt.Fprintf(&b, "💵 TOTAL: $%.0f USD\n", bd.Total)
	fmt.Fprintf(&b, "💳 Per person: $%.0f USD\n", bd.PerPerson)
	return b.String()
}

func groupThousands(n int64) string {
	s := fmt.Sprint(n)
	var out strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
