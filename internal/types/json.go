package types

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Helpers for the JSON-array columns. Decode failures yield empty slices;
// the columns are written exclusively through the encoders below, so a bad
// value means a hand-edited row, not a code path worth failing on.

func JSONStrings(vals []string) datatypes.JSON {
	if vals == nil {
		vals = []string{}
	}
	raw, _ := json.Marshal(vals)
	return datatypes.JSON(raw)
}

func StringsFromJSON(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func JSONInts(vals []int) datatypes.JSON {
	if vals == nil {
		vals = []int{}
	}
	raw, _ := json.Marshal(vals)
	return datatypes.JSON(raw)
}

func IntsFromJSON(raw datatypes.JSON) []int {
	if len(raw) == 0 {
		return []int{}
	}
	var out []int
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []int{}
	}
	return out
}
