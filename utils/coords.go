package utils

import "strconv"

// ParseCoordinate parses a latitude/longitude string, returning nil
// when the value is empty or not a float. Coordinates travel as
// strings end to end (web client and DaData both send them that way).
func ParseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
