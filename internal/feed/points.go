package feed

import "strings"

// cleanupPoints maps a waste type to the points a verified cleanup earns.
// Keys are matched case-insensitively; unrecognized types earn the default.
var cleanupPoints = map[string]int{
	"plastic bottles":  50,
	"cigarette butts":  30,
	"food packaging":   40,
	"paper waste":      25,
	"glass bottles":    45,
	"metal cans":       35,
	"electronic waste": 100,
	"hazardous waste":  150,
	"organic waste":    20,
	"mixed waste":      60,
}

const defaultCleanupPoints = 30

// CalculatePoints returns the point award for cleaning up the given waste type
func CalculatePoints(wasteType string) int {
	if pts, ok := cleanupPoints[strings.ToLower(wasteType)]; ok {
		return pts
	}
	return defaultCleanupPoints
}
