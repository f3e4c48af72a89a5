package rules

import (
	"math"

	"github.com/mcoot/playeradmin/internal/model"
)

// ComputeLevel inverts the experience curve exp = 50 * level * (level + 1)
func ComputeLevel(experience int) int {
	return int(math.Floor((math.Sqrt(2500+200*float64(experience)) - 50) / 100))
}

// ComputeUntilLevelExperience returns the experience still needed to reach
// level+1. It is negative when level is higher than exp implies.
func ComputeUntilLevelExperience(exp, level int) int {
	return 50*(level+1)*(level+2) - exp
}

// RecomputeStats refreshes Level and UntilNextLevel from Experience.
// Level must be set first since the second formula depends on it.
func RecomputeStats(p *model.Player) {
	p.Level = ComputeLevel(p.Experience)
	p.UntilNextLevel = ComputeUntilLevelExperience(p.Experience, p.Level)
}
