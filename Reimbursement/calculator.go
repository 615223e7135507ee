package Reimbursement

import (
	"math"

	"MenteSana/Models"
)

// Estimate computes the expected payout for a claim, in whole pesos,
// rounded half-up. FONASA performs no retroactive reimbursement, so its
// estimate is always zero. Pure function: same inputs, same output.
func Estimate(totalAmount float64, healthSystem string, isapreCode string, policies PolicyTable) float64 {
	if healthSystem == Models.HealthSystemFonasa {
		return 0
	}

	rate, ok := policies[isapreCode]
	if !ok {
		rate = DefaultRate
	}

	return math.Floor(totalAmount*rate + 0.5)
}
