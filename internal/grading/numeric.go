package grading

import (
	"math"
	"strconv"
	"strings"
)

const numericTolerance = 1e-9

// numericEqual reports whether both strings hold the same number, accepting a
// decimal comma ("2,5" == "2.5") and a trailing unit ("12 cm" == "12").
func numericEqual(a, b string) bool {
	av, aOK := parseFloatLoose(a)
	bv, bOK := parseFloatLoose(b)
	if !aOK || !bOK {
		return false
	}
	return math.Abs(av-bv) <= numericTolerance
}

func isNumeric(s string) bool {
	_, ok := parseFloatLoose(s)
	return ok
}

func parseFloatLoose(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if sp := strings.Fields(s); len(sp) > 0 {
		s = sp[0]
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
