package Reimbursement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadPoliciesWithoutEnvUsesDefaults(t *testing.T) {
	t.Setenv("ISAPRE_RATES", "")

	assert.Equal(t, DefaultPolicies(), LoadPolicies())
}

func TestLoadPoliciesEnvOverride(t *testing.T) {
	t.Setenv("ISAPRE_RATES", `{"colmena": 0.65, "nuevamasvida": 0.58}`)

	table := LoadPolicies()

	// overridden and newly added rates apply
	assert.Equal(t, 0.65, table["colmena"])
	assert.Equal(t, 0.58, table["nuevamasvida"])
	// untouched providers keep their defaults
	assert.Equal(t, 0.50, table["banmedica"])
	assert.Equal(t, 0.575, table["consalud"])
}

func TestLoadPoliciesMalformedEnvFallsBack(t *testing.T) {
	t.Setenv("ISAPRE_RATES", "not-json{{")

	assert.Equal(t, DefaultPolicies(), LoadPolicies())
}
