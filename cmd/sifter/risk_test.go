package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskStop_RejectsNonPositiveRiskUnit(t *testing.T) {
	stopEntry = 100
	stopGain = 1.06
	stopCurrent = 0
	stopMinPct = 0.03
	defer func() { stopRiskUnit = 0.05 }()

	for _, unit := range []float64{0, -0.05} {
		stopRiskUnit = unit
		err := riskStopCmd.RunE(riskStopCmd, nil)
		assert.Error(t, err, "risk unit %v must be rejected", unit)
	}
}

func TestRiskStop_RejectsNonPositiveEntry(t *testing.T) {
	stopEntry = 0
	stopRiskUnit = 0.05
	defer func() { stopEntry = 0 }()

	assert.Error(t, riskStopCmd.RunE(riskStopCmd, nil))
}

func TestRiskTrail_RejectsNonPositiveRiskUnit(t *testing.T) {
	trailEntry = 100
	trailQuantity = 1
	trailMinPct = 0.03
	trailRiskUnit = 0
	defer func() { trailRiskUnit = 0.05 }()

	err := riskTrailCmd.RunE(riskTrailCmd, []string{"100,106"})
	assert.Error(t, err)
}
