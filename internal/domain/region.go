package domain

import "strconv"

// Region is a named New York State sub-region derived from a ZIP code.
type Region string

const (
	RegionManhattan    Region = "Manhattan, NYC"
	RegionStatenIsland Region = "Staten Island, NYC"
	RegionBronx        Region = "Bronx, NYC"
	RegionQueens       Region = "Queens, NYC"
	RegionBrooklyn     Region = "Brooklyn, NYC"
	RegionNYCArea      Region = "New York City Area"
	RegionCapital      Region = "Capital Region"
	RegionCentralNY    Region = "Central New York"
	RegionWesternNY    Region = "Western New York"
	RegionSouthernTier Region = "Southern Tier"
	RegionUnknown      Region = "Unknown"
	RegionInvalid      Region = "Invalid"
)

// zipRange is an inclusive integer interval paired with its region label.
type zipRange struct {
	lo, hi int
	region Region
}

// nyValidityRanges gates predictions to New York State. The first range
// subsumes the rest; the union is still checked range by range to match the
// training pipeline's table.
var nyValidityRanges = []zipRange{
	{10001, 14925, RegionNYCArea},
	{12007, 12887, RegionCapital},
	{13001, 13901, RegionCentralNY},
	{14001, 14788, RegionWesternNY},
	{14801, 14925, RegionSouthernTier},
}

// nycSubRegions is evaluated in order inside the outer NYC range; first match
// wins, so Queens takes the 11201–11256 overlap with Brooklyn.
var nycSubRegions = []zipRange{
	{10001, 10282, RegionManhattan},
	{10301, 10314, RegionStatenIsland},
	{10451, 10475, RegionBronx},
	{11001, 11697, RegionQueens},
	{11201, 11256, RegionBrooklyn},
}

// upstateRegions covers values outside the outer NYC range.
var upstateRegions = []zipRange{
	{12007, 12887, RegionCapital},
	{13001, 13901, RegionCentralNY},
	{14001, 14788, RegionWesternNY},
	{14801, 14925, RegionSouthernTier},
}

// parseZip converts a ZIP string to its integer value. Fails closed: anything
// that is not exactly five ASCII digits is rejected.
func parseZip(zip string) (int, bool) {
	if len(zip) != 5 {
		return 0, false
	}
	for _, c := range zip {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(zip)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsValidNYZip reports whether zip is a five-digit code inside one of the
// New York State validity ranges.
func IsValidNYZip(zip string) bool {
	v, ok := parseZip(zip)
	if !ok {
		return false
	}
	for _, r := range nyValidityRanges {
		if v >= r.lo && v <= r.hi {
			return true
		}
	}
	return false
}

// ClassifyZip maps a ZIP code to its sub-region. Malformed input yields
// RegionInvalid; a well-formed ZIP outside every range yields RegionUnknown.
func ClassifyZip(zip string) Region {
	v, ok := parseZip(zip)
	if !ok {
		return RegionInvalid
	}

	if v >= 10001 && v <= 14925 {
		for _, r := range nycSubRegions {
			if v >= r.lo && v <= r.hi {
				return r.region
			}
		}
		return RegionNYCArea
	}

	for _, r := range upstateRegions {
		if v >= r.lo && v <= r.hi {
			return r.region
		}
	}
	return RegionUnknown
}
