package booking

import (
	"math"
	"testing"
	"time"

	"shutterhub/models"
)

func dayInterval(t *testing.T, start string, days int) models.Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse %s: %v", start, err)
	}
	return models.Interval{Start: s, End: s.AddDate(0, 0, days)}
}

func dailyResource(price float64, minUnits int) *models.Resource {
	return &models.Resource{
		ID:            "gear-1",
		OwnerID:       "owner-1",
		Kind:          models.KindGear,
		RateUnitPrice: price,
		RateUnit:      models.UnitDay,
		MinUnits:      minUnits,
		Currency:      "NGN",
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestQuoteDailyRate(t *testing.T) {
	res := dailyResource(25000, 1)

	got, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 3), PricingConfig{})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 75000) {
		t.Errorf("3 days at 25000/day = %v, want 75000", got)
	}
}

func TestQuotePartialDayRoundsUp(t *testing.T) {
	res := dailyResource(25000, 1)
	iv := dayInterval(t, "2025-06-01T00:00:00Z", 2)
	iv.End = iv.End.Add(6 * time.Hour)

	got, err := Quote(res, iv, PricingConfig{})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 75000) {
		t.Errorf("2.25 days = %v, want 75000 (3 charged days)", got)
	}
}

func TestQuoteMinUnitsFloor(t *testing.T) {
	res := dailyResource(10000, 3)

	got, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 1), PricingConfig{})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 30000) {
		t.Errorf("1 day with min 3 = %v, want 30000", got)
	}
}

func TestQuoteWeeklyOverride(t *testing.T) {
	res := dailyResource(10000, 1)

	// 7 days charge one weekly block, not 7 daily units.
	got, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 7), PricingConfig{WeeklyRateMultiplier: 5.5})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 55000) {
		t.Errorf("7 days = %v, want 55000", got)
	}
	if got >= 70000 {
		t.Errorf("weekly override must undercut the daily rate, got %v", got)
	}

	// 10 days: one weekly block plus 3 daily units.
	got, err = Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 10), PricingConfig{WeeklyRateMultiplier: 5.5})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 85000) {
		t.Errorf("10 days = %v, want 85000", got)
	}
}

func TestQuoteWeeklyMultiplierConfigurable(t *testing.T) {
	res := dailyResource(10000, 1)

	got, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 7), PricingConfig{WeeklyRateMultiplier: 5})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 50000) {
		t.Errorf("7 days at multiplier 5 = %v, want 50000", got)
	}

	// Zero config falls back to the default multiplier.
	got, err = Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 7), PricingConfig{})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 10000*DefaultWeeklyRateMultiplier) {
		t.Errorf("default multiplier quote = %v, want %v", got, 10000*DefaultWeeklyRateMultiplier)
	}
}

func TestQuoteWeekUnit(t *testing.T) {
	res := &models.Resource{
		ID:            "studio-1",
		RateUnitPrice: 120000,
		RateUnit:      models.UnitWeek,
		MinUnits:      1,
	}

	got, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 9), PricingConfig{})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(got, 240000) {
		t.Errorf("9 days on a weekly rate = %v, want 240000 (2 weeks)", got)
	}
}

func TestQuoteFixedDuration(t *testing.T) {
	res := &models.Resource{
		ID:            "shoot-1",
		Kind:          models.KindService,
		RateUnitPrice: 40000,
		RateUnit:      models.UnitFixed,
	}

	short, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 1), PricingConfig{})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	long, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 14), PricingConfig{})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !almostEqual(short, 40000) || !almostEqual(long, 40000) {
		t.Errorf("fixed price must not scale with interval: got %v and %v", short, long)
	}
}

func TestQuoteInvalidInputs(t *testing.T) {
	res := dailyResource(25000, 1)
	inverted := models.Interval{
		Start: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := Quote(res, inverted, PricingConfig{}); err == nil {
		t.Error("expected error for inverted interval")
	}

	res.RateUnit = models.RateUnit("hourly")
	if _, err := Quote(res, dayInterval(t, "2025-06-01T00:00:00Z", 1), PricingConfig{}); err == nil {
		t.Error("expected error for unknown rate unit")
	}
}
