package seed

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/ports"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Fixture is the content of a seed file.
type Fixture struct {
	Players []domain.Player `yaml:"players"`
	Teams   []TeamFixture   `yaml:"teams"`
}

// TeamFixture is a team with its starting roster.
type TeamFixture struct {
	ID            string               `yaml:"id"`
	League        string               `yaml:"league"`
	OwnerID       string               `yaml:"ownerId"`
	Name          string               `yaml:"name"`
	MaxRosterSize int                  `yaml:"maxRosterSize"`
	Budget        decimal.Decimal      `yaml:"budget"`
	Roster        []domain.RosterEntry `yaml:"roster"`
}

// Result ...
type Result struct {
	Players int
	Teams   int
}

// ParseFixture decodes a YAML seed file. Unknown fields are rejected.
func ParseFixture(data []byte) (*Fixture, error) {
	f := &Fixture{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return f, nil
}

// ReadFixture reads and decodes the seed file at path.
func ReadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(data)
}

// Service loads fixtures into the store.
type Service struct {
	repoManager ports.RepoManager
	clock       ports.Clock
}

func NewService(repoManager ports.RepoManager, clock ports.Clock) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if clock == nil {
		clock = ports.SystemClock
	}
	return &Service{repoManager, clock}, nil
}

// Load stores every player and team of the fixture in one transaction.
// Existing records with the same ids are overwritten. Every roster entry
// must refer to a player of the fixture or one already stored, and a player
// can sit on at most one roster of a league.
func (s *Service) Load(ctx context.Context, fixture *Fixture) (*Result, error) {
	now := s.clock.Now()

	players := make([]domain.Player, 0, len(fixture.Players))
	for _, p := range fixture.Players {
		p := p
		if err := p.Validate(); err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	teams := make([]*domain.Team, 0, len(fixture.Teams))
	// league -> player -> team
	rostered := make(map[string]map[string]string)
	for _, tf := range fixture.Teams {
		team, err := tf.toDomain(now)
		if err != nil {
			return nil, err
		}
		if rostered[team.League] == nil {
			rostered[team.League] = make(map[string]string)
		}
		for _, e := range team.Roster {
			if other, ok := rostered[team.League][e.PlayerID]; ok && other != team.ID {
				return nil, fmt.Errorf(
					"%w: %s on teams %s and %s of league %s",
					domain.ErrPlayerAlreadyOnRoster, e.PlayerID, other, team.ID, team.League,
				)
			}
			rostered[team.League][e.PlayerID] = team.ID
		}
		teams = append(teams, team)
	}

	if _, err := s.repoManager.RunTransaction(ctx, false, func(ctx context.Context) (interface{}, error) {
		for i := range players {
			if err := s.repoManager.PlayerRepository().SavePlayer(ctx, &players[i]); err != nil {
				return nil, err
			}
		}
		for _, team := range teams {
			for _, e := range team.Roster {
				if _, err := s.repoManager.PlayerRepository().GetPlayer(ctx, e.PlayerID); err != nil {
					return nil, fmt.Errorf("team %s: %w", team.ID, err)
				}
			}
			if err := s.repoManager.TeamRepository().SaveTeam(ctx, team); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}); err != nil {
		return nil, err
	}

	log.Infof("seed: loaded %d players and %d teams", len(players), len(teams))
	return &Result{Players: len(players), Teams: len(teams)}, nil
}

func (tf TeamFixture) toDomain(now time.Time) (*domain.Team, error) {
	if tf.ID == "" || tf.League == "" || tf.OwnerID == "" {
		return nil, fmt.Errorf("team %q: id, league and owner are mandatory", tf.Name)
	}
	team, err := domain.NewTeam(tf.ID, tf.League, tf.OwnerID, tf.Name, tf.MaxRosterSize, tf.Budget)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", tf.ID, err)
	}
	for _, e := range tf.Roster {
		if e.AcquisitionType == "" {
			e.AcquisitionType = domain.AcquisitionDraft
		}
		if err := team.AddPlayer(e, now); err != nil {
			return nil, fmt.Errorf("team %s: %w", tf.ID, err)
		}
	}
	return team, nil
}
