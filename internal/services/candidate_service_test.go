package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matchup-service/internal/mocks"
	"matchup-service/internal/models"
)

type candidateFixture struct {
	matches *mocks.MatchRepositoryMock
	apps    *mocks.ApplicationRepositoryMock
	roster  *mocks.RosterRepositoryMock
	svc     *CandidateService
}

func newCandidateFixture() *candidateFixture {
	f := &candidateFixture{
		matches: new(mocks.MatchRepositoryMock),
		apps:    new(mocks.ApplicationRepositoryMock),
		roster:  new(mocks.RosterRepositoryMock),
	}
	f.svc = NewCandidateService(f.matches, f.apps, f.roster)
	return f
}

func TestCandidatesIndividualSport(t *testing.T) {
	f := newCandidateFixture()

	match := models.Match{ID: 5, HostUserID: 1, SportType: models.SportBoxing, Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportBoxing).
		Return([]models.Player{{ID: 30, UserID: 2, Name: "kim"}}, nil).Once()
	f.apps.On("ListLiveByMatch", mock.Anything, int64(5)).Return([]models.Application(nil), nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Selectable)
	assert.Equal(t, "kim", candidates[0].DisplayName)
	assert.Nil(t, candidates[0].TeamID)
}

func TestCandidatesAlreadyAppliedStaysListed(t *testing.T) {
	f := newCandidateFixture()

	match := models.Match{ID: 5, HostUserID: 1, SportType: models.SportBoxing, Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportBoxing).
		Return([]models.Player{{ID: 30, UserID: 2, Name: "kim"}}, nil).Once()
	f.apps.On("ListLiveByMatch", mock.Anything, int64(5)).
		Return([]models.Application{{ID: 10, MatchID: 5, ApplicantPlayerID: int64ptr(30), Status: models.ApplicationPending}}, nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.False(t, candidates[0].Selectable)
	assert.Equal(t, models.CandidateReasonAlreadyApplied, candidates[0].Reason)
}

func TestCandidatesRejectedApplicationFreesTheSlot(t *testing.T) {
	f := newCandidateFixture()

	// Live means PENDING or ACCEPTED; a rejected bid no longer blocks the
	// player, so the repository does not return it and the entry is selectable.
	match := models.Match{ID: 5, HostUserID: 1, SportType: models.SportBoxing, Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportBoxing).
		Return([]models.Player{{ID: 30, UserID: 2, Name: "kim"}}, nil).Once()
	f.apps.On("ListLiveByMatch", mock.Anything, int64(5)).Return([]models.Application(nil), nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Selectable)
}

func TestCandidatesOrganizerFlagged(t *testing.T) {
	f := newCandidateFixture()

	match := models.Match{ID: 5, HostUserID: 2, SportType: models.SportBoxing, HomePlayerID: int64ptr(30), Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportBoxing).
		Return([]models.Player{{ID: 30, UserID: 2, Name: "kim"}}, nil).Once()
	f.apps.On("ListLiveByMatch", mock.Anything, int64(5)).Return([]models.Application(nil), nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.False(t, candidates[0].Selectable)
	assert.Equal(t, models.CandidateReasonOrganizer, candidates[0].Reason)
}

func TestCandidatesTeamSportMembership(t *testing.T) {
	f := newCandidateFixture()

	match := models.Match{ID: 5, HostUserID: 1, SportType: models.SportSoccer, Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()

	profile := models.Player{ID: 30, UserID: 2, Name: "kim", SportType: models.SportSoccer}
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportSoccer).
		Return([]models.Player{profile}, nil).Once()

	team := models.Team{ID: 7, Name: "FC Mapo", SportType: models.SportSoccer}
	f.roster.On("TeamsOfPlayer", mock.Anything, int64(30)).
		Return([]models.TeamMembership{{Team: team, Role: models.RoleMember}}, nil).Once()
	f.apps.On("ListLiveByMatch", mock.Anything, int64(5)).Return([]models.Application(nil), nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(30), candidates[0].PlayerID)
	require.NotNil(t, candidates[0].TeamID)
	assert.Equal(t, int64(7), *candidates[0].TeamID)
	assert.Equal(t, "FC Mapo", candidates[0].TeamName)
}

func TestCandidatesCaptainExpandsRoster(t *testing.T) {
	f := newCandidateFixture()

	match := models.Match{ID: 5, HostUserID: 1, SportType: models.SportSoccer, Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()

	captain := models.Player{ID: 30, UserID: 2, Name: "kim", SportType: models.SportSoccer}
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportSoccer).
		Return([]models.Player{captain}, nil).Once()

	team := models.Team{ID: 7, Name: "FC Mapo", SportType: models.SportSoccer}
	f.roster.On("TeamsOfPlayer", mock.Anything, int64(30)).
		Return([]models.TeamMembership{{Team: team, Role: models.RoleLeader}}, nil).Once()
	f.roster.On("Roster", mock.Anything, int64(7)).
		Return([]models.Player{captain, {ID: 31, UserID: 3, Name: "lee"}}, nil).Once()
	f.apps.On("ListLiveByMatch", mock.Anything, int64(5)).Return([]models.Application(nil), nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	// captain once (deduplicated) plus the teammate
	require.Len(t, candidates, 2)
	names := []string{candidates[0].DisplayName, candidates[1].DisplayName}
	assert.Contains(t, names, "kim")
	assert.Contains(t, names, "lee")
}

func TestCandidatesTeamSportSkipsOtherSportTeams(t *testing.T) {
	f := newCandidateFixture()

	match := models.Match{ID: 5, HostUserID: 1, SportType: models.SportSoccer, Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()

	profile := models.Player{ID: 30, UserID: 2, Name: "kim", SportType: models.SportSoccer}
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportSoccer).
		Return([]models.Player{profile}, nil).Once()

	baseball := models.Team{ID: 8, Name: "Jamsil Nine", SportType: models.SportBaseball}
	f.roster.On("TeamsOfPlayer", mock.Anything, int64(30)).
		Return([]models.TeamMembership{{Team: baseball, Role: models.RoleLeader}}, nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCandidatesTeamAlreadyAppliedFlagged(t *testing.T) {
	f := newCandidateFixture()

	match := models.Match{ID: 5, HostUserID: 1, SportType: models.SportSoccer, Status: models.MatchOpen}
	f.matches.On("GetByID", mock.Anything, int64(5)).Return(match, nil).Once()

	profile := models.Player{ID: 30, UserID: 2, Name: "kim", SportType: models.SportSoccer}
	f.roster.On("PlayersByUserAndSport", mock.Anything, int64(2), models.SportSoccer).
		Return([]models.Player{profile}, nil).Once()

	team := models.Team{ID: 7, Name: "FC Mapo", SportType: models.SportSoccer}
	f.roster.On("TeamsOfPlayer", mock.Anything, int64(30)).
		Return([]models.TeamMembership{{Team: team, Role: models.RoleMember}}, nil).Once()
	f.apps.On("ListLiveByMatch", mock.Anything, int64(5)).
		Return([]models.Application{{ID: 10, MatchID: 5, ApplicantTeamID: int64ptr(7), Status: models.ApplicationPending}}, nil).Once()

	candidates, err := f.svc.Candidates(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.False(t, candidates[0].Selectable)
	assert.Equal(t, models.CandidateReasonAlreadyApplied, candidates[0].Reason)
}
