package pattern

import (
	"math"
	"testing"
	"time"

	"github.com/pantrywise/consumption-service/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func TestConfidenceFor(t *testing.T) {
	cases := []struct {
		samples int
		want    string
	}{
		{1, model.ConfidenceLow},
		{2, model.ConfidenceLow},
		{3, model.ConfidenceMedium},
		{9, model.ConfidenceMedium},
		{10, model.ConfidenceHigh},
		{100, model.ConfidenceHigh},
	}
	for _, tc := range cases {
		if got := ConfidenceFor(tc.samples); got != tc.want {
			t.Errorf("ConfidenceFor(%d) = %s, want %s", tc.samples, got, tc.want)
		}
	}
}

func TestLearningRateFor(t *testing.T) {
	cases := map[string]float64{
		model.ConfidenceLow:    0.3,
		model.ConfidenceMedium: 0.5,
		model.ConfidenceHigh:   0.7,
	}
	for confidence, want := range cases {
		if got := LearningRateFor(confidence); got != want {
			t.Errorf("LearningRateFor(%s) = %v, want %v", confidence, got, want)
		}
	}
}

func TestNewPattern(t *testing.T) {
	now := time.Now().UTC()
	p := NewPattern(1, "milk", 10, floatPtr(2), strPtr("l"), now)

	if p.PersonalizedDays != 10 {
		t.Errorf("PersonalizedDays = %v, want 10", p.PersonalizedDays)
	}
	if p.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", p.SampleCount)
	}
	if p.Confidence != model.ConfidenceLow {
		t.Errorf("Confidence = %s, want low", p.Confidence)
	}
	if p.LearningRate != 0.3 {
		t.Errorf("LearningRate = %v, want 0.3", p.LearningRate)
	}
	if p.ConsumptionRate == nil || *p.ConsumptionRate != 0.2 {
		t.Errorf("ConsumptionRate = %v, want 0.2", p.ConsumptionRate)
	}
	if p.RateUnit == nil || *p.RateUnit != "l" {
		t.Errorf("RateUnit = %v, want l", p.RateUnit)
	}
}

func TestNewPatternWithoutQuantity(t *testing.T) {
	p := NewPattern(1, "milk", 10, nil, nil, time.Now().UTC())
	if p.ConsumptionRate != nil || p.RateUnit != nil {
		t.Errorf("expected no consumption rate, got rate=%v unit=%v", p.ConsumptionRate, p.RateUnit)
	}
}

func TestAdvanceSecondObservation(t *testing.T) {
	now := time.Now().UTC()
	p := NewPattern(1, "milk", 10, nil, nil, now)

	// Second sample is still low confidence: 0.3*6 + 0.7*10 = 8.8
	Advance(p, 6, nil, nil, now)

	if math.Abs(p.PersonalizedDays-8.8) > 1e-9 {
		t.Errorf("PersonalizedDays = %v, want 8.8", p.PersonalizedDays)
	}
	if p.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", p.SampleCount)
	}
	if p.Confidence != model.ConfidenceLow {
		t.Errorf("Confidence = %s, want low", p.Confidence)
	}
}

func TestAdvanceUsesPostIncrementRate(t *testing.T) {
	now := time.Now().UTC()
	p := &model.Pattern{
		HouseholdID:      1,
		ItemName:         "milk",
		PersonalizedDays: 10,
		SampleCount:      2,
		Confidence:       model.ConfidenceLow,
		LearningRate:     0.3,
	}

	// Third sample crosses into medium: 0.5*6 + 0.5*10 = 8.0
	Advance(p, 6, nil, nil, now)

	if math.Abs(p.PersonalizedDays-8.0) > 1e-9 {
		t.Errorf("PersonalizedDays = %v, want 8.0", p.PersonalizedDays)
	}
	if p.Confidence != model.ConfidenceMedium {
		t.Errorf("Confidence = %s, want medium", p.Confidence)
	}
	if p.LearningRate != 0.5 {
		t.Errorf("LearningRate = %v, want 0.5", p.LearningRate)
	}
}

func TestAdvanceStaysBetweenOldAndObserved(t *testing.T) {
	now := time.Now().UTC()
	days := []int{3, 25, 1, 14, 60, 7}

	p := NewPattern(1, "rice", 20, nil, nil, now)
	for _, d := range days {
		old := p.PersonalizedDays
		Advance(p, d, nil, nil, now)
		lo, hi := math.Min(old, float64(d)), math.Max(old, float64(d))
		if p.PersonalizedDays < lo || p.PersonalizedDays > hi {
			t.Fatalf("EMA left [%v, %v]: got %v after observing %d", lo, hi, p.PersonalizedDays, d)
		}
	}
	if p.SampleCount != len(days)+1 {
		t.Errorf("SampleCount = %d, want %d", p.SampleCount, len(days)+1)
	}
}

func TestAdvanceRateMatchingUnit(t *testing.T) {
	now := time.Now().UTC()
	p := NewPattern(1, "milk", 10, floatPtr(2), strPtr("l"), now)

	// Matching unit: EMA over rates. Observed 2/4 = 0.5, old 0.2.
	// Second sample: 0.3*0.5 + 0.7*0.2 = 0.29
	Advance(p, 4, floatPtr(2), strPtr("l"), now)

	if p.ConsumptionRate == nil {
		t.Fatal("ConsumptionRate is nil")
	}
	if math.Abs(*p.ConsumptionRate-0.29) > 1e-9 {
		t.Errorf("ConsumptionRate = %v, want 0.29", *p.ConsumptionRate)
	}
}

func TestAdvanceRateUnitMismatch(t *testing.T) {
	now := time.Now().UTC()
	p := NewPattern(1, "milk", 10, floatPtr(2), strPtr("l"), now)

	Advance(p, 4, floatPtr(6), strPtr("oz"), now)

	// Days still move; rate and its unit do not.
	if p.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", p.SampleCount)
	}
	if math.Abs(p.PersonalizedDays-8.2) > 1e-9 {
		t.Errorf("PersonalizedDays = %v, want 8.2", p.PersonalizedDays)
	}
	if p.ConsumptionRate == nil || *p.ConsumptionRate != 0.2 {
		t.Errorf("ConsumptionRate = %v, want unchanged 0.2", p.ConsumptionRate)
	}
	if p.RateUnit == nil || *p.RateUnit != "l" {
		t.Errorf("RateUnit = %v, want unchanged l", p.RateUnit)
	}
}

func TestAdvanceAdoptsRateWhenMissing(t *testing.T) {
	now := time.Now().UTC()
	p := NewPattern(1, "milk", 10, nil, nil, now)

	Advance(p, 5, floatPtr(2), strPtr("l"), now)

	if p.ConsumptionRate == nil || *p.ConsumptionRate != 0.4 {
		t.Errorf("ConsumptionRate = %v, want 0.4", p.ConsumptionRate)
	}
	if p.RateUnit == nil || *p.RateUnit != "l" {
		t.Errorf("RateUnit = %v, want l", p.RateUnit)
	}
}
