package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSportTypeNormalized(t *testing.T) {
	assert.Equal(t, SportSoccer, SportType(" soccer ").Normalized())
	assert.Equal(t, SportBoxing, SportType("Boxing").Normalized())
}

func TestSportTypeIsTeamSport(t *testing.T) {
	assert.True(t, SportSoccer.IsTeamSport())
	assert.True(t, SportType("futsal").IsTeamSport())
	assert.True(t, SportBaseball.IsTeamSport())
	assert.True(t, SportBasketball.IsTeamSport())

	assert.False(t, SportBoxing.IsTeamSport())
	assert.False(t, SportJiujitsu.IsTeamSport())
	assert.False(t, SportTennis.IsTeamSport())
	assert.False(t, SportType("CHESS").IsTeamSport())
}

func TestSportTypeEqual(t *testing.T) {
	assert.True(t, SportType("soccer").Equal(SportSoccer))
	assert.False(t, SportSoccer.Equal(SportFutsal))
}

func TestChatRoomAbandoned(t *testing.T) {
	room := ChatRoom{HostID: 1, ApplicantUserID: 2}
	assert.False(t, room.Abandoned())
	room.HostOut = true
	assert.False(t, room.Abandoned())
	room.ApplicantOut = true
	assert.True(t, room.Abandoned())
}

func TestCandidateKey(t *testing.T) {
	teamID := int64(7)
	assert.Equal(t, "p30", Candidate{PlayerID: 30}.Key())
	assert.Equal(t, "p30:t7", Candidate{PlayerID: 30, TeamID: &teamID}.Key())
}
