// Package plan implements the savings-plan calculator: the projected
// future value of a recurring monthly contribution under compound growth,
// and the inverse sizing of the contribution needed to reach a goal. The
// projection treats each contribution as compounding for one extra period
// (annuity-due).
package plan

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput flags calculator inputs that are rejected rather than
// computed: a negative contribution or a non-positive investment period.
var ErrInvalidInput = errors.New("invalid input")

// Projection holds the outcome of one calculator run.
type Projection struct {
	Monthly     float64
	AnnualRate  float64 // percent
	Years       float64
	Periods     int
	FutureValue float64

	// Set only when a goal amount was supplied.
	HasGoal         bool
	Goal            float64
	RequiredMonthly float64
}

// FutureValue projects the corpus after contributing monthly for the given
// number of years at the given annual growth rate in percent.
func FutureValue(monthly, annualRatePercent, years float64) (float64, error) {
	periods, err := periodsFor(years)
	if err != nil {
		return 0, err
	}
	if monthly < 0 {
		return 0, fmt.Errorf("%w: monthly contribution must not be negative", ErrInvalidInput)
	}
	return monthly * growthFactor(monthlyRate(annualRatePercent), periods), nil
}

// RequiredMonthly inverts FutureValue: the monthly contribution needed to
// reach goal over the given period at the given rate.
func RequiredMonthly(goal, annualRatePercent, years float64) (float64, error) {
	periods, err := periodsFor(years)
	if err != nil {
		return 0, err
	}
	return goal / growthFactor(monthlyRate(annualRatePercent), periods), nil
}

// Project runs the calculator once for presentation surfaces, including the
// goal inversion when goal is non-nil.
func Project(monthly, annualRatePercent, years float64, goal *float64) (Projection, error) {
	fv, err := FutureValue(monthly, annualRatePercent, years)
	if err != nil {
		return Projection{}, err
	}
	p := Projection{
		Monthly:     monthly,
		AnnualRate:  annualRatePercent,
		Years:       years,
		Periods:     int(years * 12),
		FutureValue: fv,
	}
	if goal != nil {
		req, err := RequiredMonthly(*goal, annualRatePercent, years)
		if err != nil {
			return Projection{}, err
		}
		p.HasGoal = true
		p.Goal = *goal
		p.RequiredMonthly = req
	}
	return p, nil
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

func periodsFor(years float64) (int, error) {
	if years <= 0 {
		return 0, fmt.Errorf("%w: period must be positive", ErrInvalidInput)
	}
	periods := int(years * 12)
	if periods == 0 {
		return 0, fmt.Errorf("%w: period shorter than one month", ErrInvalidInput)
	}
	return periods, nil
}

// growthFactor is the annuity-due multiplier: future value per unit of
// monthly contribution. At zero rate it degenerates to the period count.
func growthFactor(rate float64, periods int) float64 {
	if rate == 0 {
		return float64(periods)
	}
	return (math.Pow(1+rate, float64(periods)) - 1) / rate * (1 + rate)
}
