package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is a blood glucose measurement unit
type Unit string

const (
	UnitMgdl Unit = "mg/dL"
	UnitMmol Unit = "mmol/L"
)

// molarMass is the molar conversion factor between mg/dL and mmol/L for
// glucose (g/mol divided by 10 for the dL scale).
var molarMass = decimal.NewFromFloat(18.0156)

// Convert converts a glucose value between mg/dL and mmol/L.
// Returns v unchanged if from == to or if a unit is unrecognised.
func Convert(v decimal.Decimal, from, to Unit) decimal.Decimal {
	if from == to {
		return v
	}
	if from == UnitMgdl && to == UnitMmol {
		return v.Div(molarMass)
	}
	if from == UnitMmol && to == UnitMgdl {
		return v.Mul(molarMass)
	}
	return v
}

// DisplayRound rounds a value to the unit's display precision:
// whole numbers for mg/dL, one decimal place for mmol/L.
func DisplayRound(v decimal.Decimal, u Unit) decimal.Decimal {
	if u == UnitMmol {
		return v.Round(1)
	}
	return v.Round(0)
}

// ParseUnit normalises a caller-supplied unit string.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "/", "")) {
	case "mgdl":
		return UnitMgdl, nil
	case "mmoll", "mmol":
		return UnitMmol, nil
	}
	return "", fmt.Errorf("unknown glucose unit %q", s)
}
