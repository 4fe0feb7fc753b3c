package plan

import (
	"errors"
	"math"
	"testing"
)

func TestFutureValueReference(t *testing.T) {
	// 1000/month at 12% for one year: 12 periods at 1% monthly,
	// annuity-due factor ~12.809328.
	fv, err := FutureValue(1000, 12, 1)
	if err != nil {
		t.Fatalf("FutureValue: %v", err)
	}
	if math.Abs(fv-12809.33) > 0.01 {
		t.Errorf("fv = %v, want ~12809.33", fv)
	}
}

func TestFutureValueZeroRate(t *testing.T) {
	fv, err := FutureValue(500, 0, 2.5)
	if err != nil {
		t.Fatalf("FutureValue: %v", err)
	}
	if want := 500.0 * 30; fv != want {
		t.Errorf("fv = %v, want exactly %v", fv, want)
	}
}

func TestGoalInversionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		rate    float64
		years   float64
	}{
		{"positive rate", 2500, 12, 10},
		{"zero rate", 2500, 0, 10},
		{"fractional years", 1000, 8, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv, err := FutureValue(tt.monthly, tt.rate, tt.years)
			if err != nil {
				t.Fatalf("FutureValue: %v", err)
			}
			back, err := RequiredMonthly(fv, tt.rate, tt.years)
			if err != nil {
				t.Fatalf("RequiredMonthly: %v", err)
			}
			if math.Abs(back-tt.monthly) > 1e-9*tt.monthly {
				t.Errorf("inversion = %v, want %v", back, tt.monthly)
			}
		})
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		years   float64
	}{
		{"negative contribution", -1, 10},
		{"zero years", 100, 0},
		{"negative years", 100, -3},
		{"period under one month", 100, 0.04},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FutureValue(tt.monthly, 12, tt.years); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestProjectWithGoal(t *testing.T) {
	goal := 1_000_000.0
	p, err := Project(5000, 12, 10, &goal)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p.Periods != 120 {
		t.Errorf("periods = %d, want 120", p.Periods)
	}
	if !p.HasGoal || p.Goal != goal {
		t.Errorf("goal not carried: %+v", p)
	}
	if p.RequiredMonthly <= 0 {
		t.Errorf("required monthly = %v, want > 0", p.RequiredMonthly)
	}

	// Contributing the required amount must land on the goal.
	fv, err := FutureValue(p.RequiredMonthly, 12, 10)
	if err != nil {
		t.Fatalf("FutureValue: %v", err)
	}
	if math.Abs(fv-goal) > 1e-6*goal {
		t.Errorf("fv at required monthly = %v, want %v", fv, goal)
	}
}

func TestProjectWithoutGoal(t *testing.T) {
	p, err := Project(1000, 0, 1, nil)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p.HasGoal || p.Goal != 0 || p.RequiredMonthly != 0 {
		t.Errorf("goal fields set without goal: %+v", p)
	}
	if p.FutureValue != 12000 {
		t.Errorf("fv = %v, want 12000", p.FutureValue)
	}
}
