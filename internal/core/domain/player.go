package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sport ...
type Sport string

const (
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
	SportBaseball   Sport = "baseball"
	SportHockey     Sport = "hockey"
	SportSoccer     Sport = "soccer"
)

// StatKey is the name of a tracked statistic.
type StatKey string

const (
	StatGamesPlayed          StatKey = "gamesPlayed"
	StatFantasyPoints        StatKey = "fantasyPoints"
	StatAverageFantasyPoints StatKey = "averageFantasyPoints"

	StatPassingYards        StatKey = "passingYards"
	StatPassingTouchdowns   StatKey = "passingTouchdowns"
	StatInterceptions       StatKey = "interceptions"
	StatRushingYards        StatKey = "rushingYards"
	StatRushingTouchdowns   StatKey = "rushingTouchdowns"
	StatReceivingYards      StatKey = "receivingYards"
	StatReceivingTouchdowns StatKey = "receivingTouchdowns"
	StatReceptions          StatKey = "receptions"
	StatFumbles             StatKey = "fumbles"

	StatPoints               StatKey = "points"
	StatRebounds             StatKey = "rebounds"
	StatAssists              StatKey = "assists"
	StatSteals               StatKey = "steals"
	StatBlocks               StatKey = "blocks"
	StatFieldGoalPercentage  StatKey = "fieldGoalPercentage"
	StatThreePointPercentage StatKey = "threePointPercentage"
	StatFreeThrowPercentage  StatKey = "freeThrowPercentage"

	StatHits     StatKey = "hits"
	StatHomeRuns StatKey = "homeRuns"
	StatRuns     StatKey = "runs"
	StatRBI      StatKey = "rbi"

	StatGoals StatKey = "goals"
	StatSaves StatKey = "saves"
)

var generalStats = []StatKey{
	StatGamesPlayed, StatFantasyPoints, StatAverageFantasyPoints,
}

var statsBySport = map[Sport][]StatKey{
	SportFootball: {
		StatPassingYards, StatPassingTouchdowns, StatInterceptions,
		StatRushingYards, StatRushingTouchdowns, StatReceivingYards,
		StatReceivingTouchdowns, StatReceptions, StatFumbles,
	},
	SportBasketball: {
		StatPoints, StatRebounds, StatAssists, StatSteals, StatBlocks,
		StatFieldGoalPercentage, StatThreePointPercentage, StatFreeThrowPercentage,
	},
	SportBaseball: {StatHits, StatHomeRuns, StatRuns, StatRBI},
	SportHockey:   {StatGoals, StatAssists, StatSaves},
	SportSoccer:   {StatGoals, StatAssists, StatSaves},
}

func (s Sport) IsValid() bool {
	_, ok := statsBySport[s]
	return ok
}

// Tracks returns whether the given stat is part of the sport's stat line.
func (s Sport) Tracks(key StatKey) bool {
	for _, k := range generalStats {
		if k == key {
			return true
		}
	}
	for _, k := range statsBySport[s] {
		if k == key {
			return true
		}
	}
	return false
}

// StatLine is a set of statistics restricted to the keys tracked by a sport.
type StatLine map[StatKey]float64

// Validate makes sure the stat line carries only keys tracked by sport.
func (l StatLine) Validate(sport Sport) error {
	if !sport.IsValid() {
		return fmt.Errorf("%w: %s", ErrPlayerUnknownSport, sport)
	}
	for k := range l {
		if !sport.Tracks(k) {
			return fmt.Errorf("%w: %s (%s)", ErrPlayerUnknownStat, k, sport)
		}
	}
	return nil
}

// Normalize recomputes the derived average fantasy points when games played
// is known.
func (l StatLine) Normalize() {
	games := l[StatGamesPlayed]
	if games <= 0 {
		return
	}
	avg := decimal.NewFromFloat(l[StatFantasyPoints]).
		Div(decimal.NewFromFloat(games)).Round(2)
	l[StatAverageFantasyPoints], _ = avg.Float64()
}

// Player is the subset of a league player the trade desk reads.
type Player struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Position     string          `json:"position" yaml:"position"`
	Team         string          `json:"team" yaml:"team"`
	Sport        Sport           `json:"sport" yaml:"sport"`
	FantasyValue decimal.Decimal `json:"fantasyValue" yaml:"fantasyValue"`
	Salary       decimal.Decimal `json:"salary" yaml:"salary"`
	Stats        StatLine        `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Validate ...
func (p *Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player: missing id")
	}
	if p.FantasyValue.IsNegative() {
		return fmt.Errorf("player %s: %w", p.ID, ErrTradeNegativeValue)
	}
	if err := p.Stats.Validate(p.Sport); err != nil {
		return fmt.Errorf("player %s: %w", p.ID, err)
	}
	p.Stats.Normalize()
	return nil
}

// Snapshot returns the valuation snapshot stored in a trade.
func (p Player) Snapshot() TradedPlayer {
	return TradedPlayer{
		PlayerID:     p.ID,
		PlayerName:   p.Name,
		Position:     p.Position,
		Team:         p.Team,
		FantasyValue: p.FantasyValue,
	}
}
