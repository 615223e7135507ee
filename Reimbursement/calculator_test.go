package Reimbursement

import (
	"testing"

	"MenteSana/Models"

	"github.com/stretchr/testify/assert"
)

func TestEstimateFonasaIsAlwaysZero(t *testing.T) {
	policies := DefaultPolicies()

	assert.Equal(t, 0.0, Estimate(100000, Models.HealthSystemFonasa, "", policies))
	assert.Equal(t, 0.0, Estimate(100000, Models.HealthSystemFonasa, "colmena", policies))
	assert.Equal(t, 0.0, Estimate(0, Models.HealthSystemFonasa, "consalud", policies))
}

func TestEstimateKnownProviderRates(t *testing.T) {
	policies := DefaultPolicies()

	tests := []struct {
		code     string
		amount   float64
		expected float64
	}{
		{"banmedica", 100000, 50000},
		{"vidatres", 100000, 52000},
		{"cruzblanca", 100000, 54000},
		{"consalud", 100000, 57500},
		{"colmena", 100000, 60000},
	}

	for _, tt := range tests {
		got := Estimate(tt.amount, Models.HealthSystemIsapre, tt.code, policies)
		assert.Equal(t, tt.expected, got, "provider %s", tt.code)
	}
}

func TestEstimateRoundsHalfUp(t *testing.T) {
	policies := DefaultPolicies()

	// 1000 * 0.575 = 575 exactly
	assert.Equal(t, 575.0, Estimate(1000, Models.HealthSystemIsapre, "consalud", policies))
	// 999 * 0.50 = 499.5 rounds up
	assert.Equal(t, 500.0, Estimate(999, Models.HealthSystemIsapre, "banmedica", policies))
}

func TestEstimateUnknownProviderUsesDefaultRate(t *testing.T) {
	policies := DefaultPolicies()

	assert.Equal(t, 55000.0, Estimate(100000, Models.HealthSystemIsapre, "unknown-provider", policies))
	assert.Equal(t, 55000.0, Estimate(100000, Models.HealthSystemIsapre, "", policies))
}

func TestEstimateIsDeterministic(t *testing.T) {
	policies := DefaultPolicies()

	first := Estimate(73450, Models.HealthSystemIsapre, "colmena", policies)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Estimate(73450, Models.HealthSystemIsapre, "colmena", policies))
	}
}

func TestDefaultPoliciesDistinctRatesInRange(t *testing.T) {
	policies := DefaultPolicies()
	assert.Len(t, policies, 5)

	seen := make(map[float64]string)
	for code, rate := range policies {
		assert.GreaterOrEqual(t, rate, 0.50, "provider %s", code)
		assert.LessOrEqual(t, rate, 0.60, "provider %s", code)
		if prior, dup := seen[rate]; dup {
			t.Errorf("rate %v shared by %s and %s", rate, prior, code)
		}
		seen[rate] = code
	}
}
