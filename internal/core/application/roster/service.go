package roster

import (
	"context"
	"fmt"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// Service is the team directory backed by the repositories of the
// RepoManager. It resolves teams and applies the roster changes of accepted
// trades.
type Service struct {
	repoManager ports.RepoManager
}

func NewService(repoManager ports.RepoManager) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	return &Service{repoManager}, nil
}

func (s *Service) ResolveTeam(ctx context.Context, teamID string) (*ports.TeamInfo, error) {
	team, err := s.repoManager.TeamRepository().GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &ports.TeamInfo{
		ID:      team.ID,
		League:  team.League,
		OwnerID: team.OwnerID,
		Name:    team.Name,
	}, nil
}

// GetTeam returns the full team with its roster.
func (s *Service) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.repoManager.TeamRepository().GetTeam(ctx, teamID)
	if err != nil {
		return nil, application.MapError(err, "roster: failed to get team")
	}
	return team, nil
}

// ApplyRosterTrade moves the players of an accepted trade between the rosters
// of the two teams. Both teams are updated in the transaction carried by ctx,
// or in a new one if there is none, so either both rosters change or none.
func (s *Service) ApplyRosterTrade(ctx context.Context, trade domain.RosterTrade) error {
	_, err := s.repoManager.RunTransaction(ctx, false, func(ctx context.Context) (interface{}, error) {
		repo := s.repoManager.TeamRepository()

		initiator, err := repo.GetTeam(ctx, trade.InitiatorTeamID)
		if err != nil {
			return nil, err
		}
		recipient, err := repo.GetTeam(ctx, trade.RecipientTeamID)
		if err != nil {
			return nil, err
		}

		if err := domain.ExchangePlayers(
			initiator, recipient,
			trade.OfferedPlayerIDs, trade.RequestedPlayerIDs, trade.At,
		); err != nil {
			return nil, err
		}

		for _, team := range []*domain.Team{initiator, recipient} {
			updated := team
			if err := repo.UpdateTeam(
				ctx, team.ID, func(_ *domain.Team) (*domain.Team, error) {
					return updated, nil
				},
			); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	log.Debugf(
		"roster: moved %d players from %s to %s and %d back",
		len(trade.OfferedPlayerIDs), trade.InitiatorTeamID, trade.RecipientTeamID,
		len(trade.RequestedPlayerIDs),
	)
	return nil
}
