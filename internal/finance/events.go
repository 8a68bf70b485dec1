package finance

import (
	"github.com/Dan9191/openbanqr/internal/models"
	"github.com/shopspring/decimal"
)

// EventSign is +1 for events that add cash (bonus, opportunity) and -1 otherwise.
func EventSign(eventType string) int {
	switch eventType {
	case models.EventBonus, models.EventOpportunity:
		return 1
	default:
		return -1
	}
}

// SampleEvents tests every definition against its probability, then draws an
// amount in [min, max] for each one that fired. Draws are independent and carry
// no memory between weeks, so several events may fire together.
func SampleEvents(rng Random, defs []models.FinancialEvent) []models.TriggeredEvent {
	var fired []models.FinancialEvent
	for _, def := range defs {
		if rng.Float64() < def.Probability {
			fired = append(fired, def)
		}
	}

	events := make([]models.TriggeredEvent, 0, len(fired))
	for _, def := range fired {
		amount := RoundCents(uniform(rng, def.AmountMin, def.AmountMax))
		if EventSign(def.EventType) < 0 {
			amount = amount.Neg()
		}
		events = append(events, models.TriggeredEvent{
			EventID:   def.ID,
			Title:     def.Title,
			EventType: def.EventType,
			Amount:    amount,
		})
	}
	return events
}

// EventImpact sums the signed amounts of triggered events.
func EventImpact(events []models.TriggeredEvent) decimal.Decimal {
	total := decimal.Zero
	for _, e := range events {
		total = total.Add(e.Amount)
	}
	return total
}
