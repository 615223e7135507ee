package Reimbursement

import (
	"encoding/json"
	"log"
	"os"
)

// DefaultRate applies when the patient's isapre is unknown or not in the
// table.
const DefaultRate = 0.55

// Isapre is one private health-coverage provider the platform knows how to
// file against.
type Isapre struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// PolicyTable maps isapre code to reimbursement rate (fraction of gross).
type PolicyTable map[string]float64

var isapreCatalog = []Isapre{
	{Code: "banmedica", Name: "Isapre Banmédica", Rate: 0.50},
	{Code: "vidatres", Name: "Isapre Vida Tres", Rate: 0.52},
	{Code: "cruzblanca", Name: "Isapre Cruz Blanca", Rate: 0.54},
	{Code: "consalud", Name: "Isapre Consalud", Rate: 0.575},
	{Code: "colmena", Name: "Isapre Colmena Golden Cross", Rate: 0.60},
}

func DefaultPolicies() PolicyTable {
	table := make(PolicyTable, len(isapreCatalog))
	for _, isapre := range isapreCatalog {
		table[isapre.Code] = isapre.Rate
	}
	return table
}

// LoadPolicies returns the default table, with per-isapre overrides taken
// from the ISAPRE_RATES env variable (JSON object: code -> rate) when set.
func LoadPolicies() PolicyTable {
	table := DefaultPolicies()

	raw := os.Getenv("ISAPRE_RATES")
	if raw == "" {
		return table
	}

	var overrides map[string]float64
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		log.Printf("Ignoring malformed ISAPRE_RATES: %v", err)
		return table
	}
	for code, rate := range overrides {
		table[code] = rate
	}
	return table
}

func IsapreByCode(code string) (Isapre, bool) {
	for _, isapre := range isapreCatalog {
		if isapre.Code == code {
			return isapre, true
		}
	}
	return Isapre{}, false
}

func Isapres() []Isapre {
	return isapreCatalog
}
