// Package profile holds named strategy profiles: the per-stage enable
// flags and thresholds a screening run evaluates against. A Profile is
// an immutable snapshot; switching profiles means loading a new value,
// never mutating one a running pipeline already holds.
package profile

import (
	"fmt"

	"github.com/sifterlab/sifter/internal/core"
)

// EarningsConfig holds earnings stage thresholds.
type EarningsConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	MinPrevRevenueYoY float64 `mapstructure:"min_prev_rev_yoy"`
	MinPrevEPSYoY     float64 `mapstructure:"min_prev_eps_yoy"`
}

// FundamentalConfig holds fundamental stage thresholds.
type FundamentalConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	MinMarketCap      float64 `mapstructure:"min_market_cap"`
	MaxMarketCap      float64 `mapstructure:"max_market_cap"`
	MinRevenue        float64 `mapstructure:"min_revenue"`
	MinRevenueYoY     float64 `mapstructure:"min_rev_yoy"`
	MinPrevRevenueYoY float64 `mapstructure:"min_prev_rev_yoy"`
	MinEPSYoY         float64 `mapstructure:"min_eps_yoy"`
	MinPrevEPSYoY     float64 `mapstructure:"min_prev_eps_yoy"`
}

// WeeklyConfig holds weekly stage factors.
type WeeklyConfig struct {
	Enabled             bool    `mapstructure:"enabled"`
	HighStabilityFactor float64 `mapstructure:"high_stability_factor"`
	LowDistanceFactor   float64 `mapstructure:"low_distance_factor"`
	HighDistanceFactor  float64 `mapstructure:"high_distance_factor"`
}

// RelStrengthConfig holds the relative strength percentile threshold.
type RelStrengthConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	Threshold float64 `mapstructure:"threshold"`
}

// DailyConfig holds daily breakout stage settings. Timeframes are
// trailing trading-day windows checked for new highs.
type DailyConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Threshold  float64 `mapstructure:"threshold"`
	Timeframes []int   `mapstructure:"timeframes"`
}

// RiskConfig holds position risk parameters.
type RiskConfig struct {
	RiskUnit             float64 `mapstructure:"risk_unit"`
	MinStopPct           float64 `mapstructure:"min_stop_pct"`
	MaxSlots             int     `mapstructure:"max_slots"`
	MaxSinglePositionPct float64 `mapstructure:"max_single_position_pct"`
}

// Profile bundles all stage thresholds under a name.
type Profile struct {
	Name        string            `mapstructure:"-"`
	Earnings    EarningsConfig    `mapstructure:"earnings"`
	Fundamental FundamentalConfig `mapstructure:"fundamental"`
	Weekly      WeeklyConfig      `mapstructure:"weekly"`
	RelStrength RelStrengthConfig `mapstructure:"relative_strength"`
	Daily       DailyConfig       `mapstructure:"daily"`
	Risk        RiskConfig        `mapstructure:"risk"`
}

// StageEnabled reports whether the given stage is enabled.
func (p Profile) StageEnabled(stage core.Stage) bool {
	switch stage {
	case core.StageEarnings:
		return p.Earnings.Enabled
	case core.StageFundamental:
		return p.Fundamental.Enabled
	case core.StageWeekly:
		return p.Weekly.Enabled
	case core.StageRelStrength:
		return p.RelStrength.Enabled
	case core.StageDaily:
		return p.Daily.Enabled
	}
	return false
}

// Validate checks the profile for nonsensical values.
func (p Profile) Validate() error {
	if p.Fundamental.Enabled && p.Fundamental.MaxMarketCap > 0 &&
		p.Fundamental.MinMarketCap > p.Fundamental.MaxMarketCap {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("min_market_cap %.0f exceeds max_market_cap %.0f",
				p.Fundamental.MinMarketCap, p.Fundamental.MaxMarketCap))
	}
	if p.Daily.Enabled {
		if p.Daily.Threshold < 0 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("daily threshold cannot be negative, got %f", p.Daily.Threshold))
		}
		for _, tf := range p.Daily.Timeframes {
			if tf <= 0 {
				return core.WrapError(core.ErrConfigInvalid,
					fmt.Errorf("daily timeframe must be positive, got %d", tf))
			}
		}
	}
	if p.Risk.RiskUnit <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("risk_unit must be positive, got %f", p.Risk.RiskUnit))
	}
	if p.Risk.MinStopPct < 0 || p.Risk.MinStopPct >= 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("min_stop_pct must be in [0, 1), got %f", p.Risk.MinStopPct))
	}
	if p.Risk.MaxSlots <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_slots must be positive, got %d", p.Risk.MaxSlots))
	}
	return nil
}

// DefaultName is the profile used when a requested one is absent.
const DefaultName = "balanced"

// Balanced returns the built-in default profile.
func Balanced() Profile {
	return Profile{
		Name: DefaultName,
		Earnings: EarningsConfig{
			Enabled:           true,
			MinPrevRevenueYoY: 0.10,
			MinPrevEPSYoY:     0.10,
		},
		Fundamental: FundamentalConfig{
			Enabled:           true,
			MinMarketCap:      3e8,
			MaxMarketCap:      5e11,
			MinRevenue:        1e7,
			MinRevenueYoY:     0.20,
			MinPrevRevenueYoY: 0.10,
			MinEPSYoY:         0.20,
			MinPrevEPSYoY:     0.10,
		},
		Weekly: WeeklyConfig{
			Enabled:             true,
			HighStabilityFactor: 1.05,
			LowDistanceFactor:   1.30,
			HighDistanceFactor:  0.70,
		},
		RelStrength: RelStrengthConfig{
			Enabled:   true,
			Threshold: 80,
		},
		Daily: DailyConfig{
			Enabled:    true,
			Threshold:  0.5,
			Timeframes: []int{21, 63, 126, 252, 504},
		},
		Risk: RiskConfig{
			RiskUnit:             0.05,
			MinStopPct:           0.03,
			MaxSlots:             10,
			MaxSinglePositionPct: 0.40,
		},
	}
}
