package services

import (
	"context"

	"matchup-service/internal/models"
	"matchup-service/internal/repositories"
)

// CandidateResolver computes which players or teams a user may submit for a
// match. Advisory only: the lifecycle engine is the source of truth and
// re-validates authority on submission.
type CandidateResolver interface {
	Candidates(ctx context.Context, matchID, userID int64) ([]models.Candidate, error)
}

// CandidateService implements CandidateResolver over the roster tables.
type CandidateService struct {
	matches repositories.MatchRepository
	apps    repositories.ApplicationRepository
	roster  repositories.RosterRepository
}

// NewCandidateService builds a CandidateService.
func NewCandidateService(
	matches repositories.MatchRepository,
	apps repositories.ApplicationRepository,
	roster repositories.RosterRepository,
) *CandidateService {
	return &CandidateService{matches: matches, apps: apps, roster: roster}
}

// Candidates resolves the user's selectable entries for the match's sport.
// Individual sports yield the user's own profiles. Team sports yield one entry
// per (player, team) membership, so a player on two teams is two candidates,
// and a captain's set expands to the whole roster of each team they lead.
// Entries already bound to a live application, and the match's own home slot,
// stay in the list flagged non-selectable so the UI can badge them.
func (s *CandidateService) Candidates(ctx context.Context, matchID, userID int64) ([]models.Candidate, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.roster.PlayersByUserAndSport(ctx, userID, match.SportType)
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	if match.SportType.IsTeamSport() {
		candidates, err = s.teamCandidates(ctx, match, profiles)
	} else {
		for _, p := range profiles {
			candidates = append(candidates, models.Candidate{
				PlayerID:    p.ID,
				DisplayName: p.Name,
				Selectable:  true,
			})
		}
	}
	if err != nil {
		return nil, err
	}

	if err := s.flagUnselectable(ctx, match, candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *CandidateService) teamCandidates(ctx context.Context, match models.Match, profiles []models.Player) ([]models.Candidate, error) {
	var candidates []models.Candidate
	seen := map[string]struct{}{}

	add := func(c models.Candidate) {
		if _, ok := seen[c.Key()]; ok {
			return
		}
		seen[c.Key()] = struct{}{}
		candidates = append(candidates, c)
	}

	for _, profile := range profiles {
		memberships, err := s.roster.TeamsOfPlayer(ctx, profile.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range memberships {
			if !m.Team.SportType.Equal(match.SportType) {
				continue
			}
			teamID := m.Team.ID
			add(models.Candidate{
				PlayerID:    profile.ID,
				TeamID:      &teamID,
				DisplayName: profile.Name,
				TeamName:    m.Team.Name,
				Selectable:  true,
			})

			if m.Role != models.RoleLeader {
				continue
			}
			// The captain may apply on behalf of any roster member.
			roster, err := s.roster.Roster(ctx, m.Team.ID)
			if err != nil {
				return nil, err
			}
			for _, teammate := range roster {
				id := m.Team.ID
				add(models.Candidate{
					PlayerID:    teammate.ID,
					TeamID:      &id,
					DisplayName: teammate.Name,
					TeamName:    m.Team.Name,
					Selectable:  true,
				})
			}
		}
	}
	return candidates, nil
}

// flagUnselectable marks candidates bound to a live application for this match
// and the match's own home player/team.
func (s *CandidateService) flagUnselectable(ctx context.Context, match models.Match, candidates []models.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	live, err := s.apps.ListLiveByMatch(ctx, match.ID)
	if err != nil {
		return err
	}

	appliedPlayers := map[int64]struct{}{}
	appliedTeams := map[int64]struct{}{}
	for _, app := range live {
		if app.ApplicantPlayerID != nil {
			appliedPlayers[*app.ApplicantPlayerID] = struct{}{}
		}
		if app.ApplicantTeamID != nil {
			appliedTeams[*app.ApplicantTeamID] = struct{}{}
		}
	}

	for i := range candidates {
		c := &candidates[i]
		if match.HomePlayerID != nil && *match.HomePlayerID == c.PlayerID {
			c.Selectable = false
			c.Reason = models.CandidateReasonOrganizer
			continue
		}
		if match.HomeTeamID != nil && c.TeamID != nil && *match.HomeTeamID == *c.TeamID {
			c.Selectable = false
			c.Reason = models.CandidateReasonOrganizer
			continue
		}
		if c.TeamID != nil {
			if _, ok := appliedTeams[*c.TeamID]; ok {
				c.Selectable = false
				c.Reason = models.CandidateReasonAlreadyApplied
			}
			continue
		}
		if _, ok := appliedPlayers[c.PlayerID]; ok {
			c.Selectable = false
			c.Reason = models.CandidateReasonAlreadyApplied
		}
	}
	return nil
}
