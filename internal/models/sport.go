package models

import "strings"

// SportType is an open string set; new sports can appear without a schema change.
type SportType string

const (
	SportSoccer     SportType = "SOCCER"
	SportFutsal     SportType = "FUTSAL"
	SportBaseball   SportType = "BASEBALL"
	SportBasketball SportType = "BASKETBALL"
	SportBoxing     SportType = "BOXING"
	SportJiujitsu   SportType = "JIUJITSU"
	SportTennis     SportType = "TENNIS"
)

// teamSports is the single policy table shared by the candidate resolver, the
// lifecycle engine and the API surface. Applications for a team sport bind a
// team; everything else binds a player.
var teamSports = map[SportType]struct{}{
	SportSoccer:     {},
	SportFutsal:     {},
	SportBaseball:   {},
	SportBasketball: {},
}

// Normalized returns the canonical upper-case form used for comparisons.
func (s SportType) Normalized() SportType {
	return SportType(strings.ToUpper(strings.TrimSpace(string(s))))
}

// IsTeamSport reports whether applications for this sport bind a team.
func (s SportType) IsTeamSport() bool {
	_, ok := teamSports[s.Normalized()]
	return ok
}

// Equal compares sport types case-insensitively.
func (s SportType) Equal(other SportType) bool {
	return s.Normalized() == other.Normalized()
}
