package pattern

import (
	"time"

	"github.com/pantrywise/consumption-service/internal/model"
)

// MinSamplesForPersonalization guards against trusting a single noisy
// observation: predictions stay on the baseline until a second confirmed
// depletion backs the pattern up.
const MinSamplesForPersonalization = 2

// ConfidenceFor buckets a sample count into a tier. It is the only place
// confidence is ever derived.
func ConfidenceFor(sampleCount int) string {
	switch {
	case sampleCount < 3:
		return model.ConfidenceLow
	case sampleCount < 10:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceHigh
	}
}

// LearningRateFor maps a confidence tier to its EMA weight. Few samples
// weight history heavily; many samples weight recent behavior more.
func LearningRateFor(confidence string) float64 {
	switch confidence {
	case model.ConfidenceLow:
		return 0.3
	case model.ConfidenceMedium:
		return 0.5
	default:
		return 0.7
	}
}

func ema(rate, observed, old float64) float64 {
	return rate*observed + (1-rate)*old
}

// observedRate computes quantity/day for one observation, or nil when the
// inputs can't produce a meaningful rate.
func observedRate(quantity *float64, daysLasted int) *float64 {
	if quantity == nil || *quantity <= 0 || daysLasted <= 0 {
		return nil
	}
	rate := *quantity / float64(daysLasted)
	return &rate
}

// NewPattern bootstraps a pattern from its first confirmed observation.
func NewPattern(householdID int64, itemName string, daysLasted int, quantity *float64, unit *string, now time.Time) *model.Pattern {
	confidence := ConfidenceFor(1)
	p := &model.Pattern{
		HouseholdID:      householdID,
		ItemName:         itemName,
		PersonalizedDays: float64(daysLasted),
		SampleCount:      1,
		Confidence:       confidence,
		LearningRate:     LearningRateFor(confidence),
		LastObservedAt:   &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if rate := observedRate(quantity, daysLasted); rate != nil {
		p.ConsumptionRate = rate
		p.RateUnit = unit
	}
	return p
}

// Advance applies one confirmed observation to an existing pattern in place.
// The learning rate is derived from the post-increment sample count. The
// consumption rate only moves when the observation's unit matches the
// pattern's rate unit; a mismatch leaves the rate untouched while the
// day-based average still updates.
func Advance(p *model.Pattern, daysLasted int, quantity *float64, unit *string, now time.Time) {
	newCount := p.SampleCount + 1
	confidence := ConfidenceFor(newCount)
	learningRate := LearningRateFor(confidence)

	p.PersonalizedDays = ema(learningRate, float64(daysLasted), p.PersonalizedDays)
	p.SampleCount = newCount
	p.Confidence = confidence
	p.LearningRate = learningRate
	p.LastObservedAt = &now
	p.UpdatedAt = now

	rate := observedRate(quantity, daysLasted)
	if rate == nil {
		return
	}
	if p.ConsumptionRate == nil || p.RateUnit == nil {
		p.ConsumptionRate = rate
		p.RateUnit = unit
		return
	}
	if unit == nil || *unit != *p.RateUnit {
		return
	}
	newRate := ema(learningRate, *rate, *p.ConsumptionRate)
	p.ConsumptionRate = &newRate
}
