package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinRosterSize     = 1
	MaxRosterSize     = 30
	DefaultRosterSize = 16
)

// DefaultBudget is the salary budget assigned to a team when not specified.
var DefaultBudget = decimal.NewFromInt(200)

// AcquisitionType is how a player joined a roster.
type AcquisitionType string

const (
	AcquisitionDraft     AcquisitionType = "draft"
	AcquisitionWaiver    AcquisitionType = "waiver"
	AcquisitionTrade     AcquisitionType = "trade"
	AcquisitionFreeAgent AcquisitionType = "free_agent"
)

// TransactionType is the kind of a roster transaction.
type TransactionType string

const (
	TransactionAdd         TransactionType = "add"
	TransactionDrop        TransactionType = "drop"
	TransactionTrade       TransactionType = "trade"
	TransactionWaiverClaim TransactionType = "waiver_claim"
)

// RosterEntry is a player on a team roster.
type RosterEntry struct {
	PlayerID        string          `json:"playerId" yaml:"playerId"`
	Position        string          `json:"position" yaml:"position"`
	IsStarter       bool            `json:"isStarter" yaml:"isStarter"`
	AcquisitionDate time.Time       `json:"acquisitionDate" yaml:"acquisitionDate"`
	AcquisitionType AcquisitionType `json:"acquisitionType" yaml:"acquisitionType"`
	Salary          decimal.Decimal `json:"salary" yaml:"salary"`
}

// TeamTransaction is an entry of the roster transactions log of a team.
type TeamTransaction struct {
	Type     TransactionType `json:"type"`
	PlayerID string          `json:"playerId"`
	Details  string          `json:"details"`
	Date     time.Time       `json:"date"`
}

// Team is the roster owner a trade is proposed by or to.
type Team struct {
	ID              string            `json:"id"`
	League          string            `json:"league"`
	OwnerID         string            `json:"ownerId"`
	Name            string            `json:"name"`
	Roster          []RosterEntry     `json:"roster"`
	MaxRosterSize   int               `json:"maxRosterSize"`
	Budget          decimal.Decimal   `json:"budget"`
	SalaryCapUsed   decimal.Decimal   `json:"salaryCapUsed"`
	RemainingBudget decimal.Decimal   `json:"remainingBudget"`
	Transactions    []TeamTransaction `json:"transactions"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// NewTeam returns a team with an empty roster. Zero maxRosterSize and budget
// fall back to the defaults.
func NewTeam(
	id, league, ownerID, name string, maxRosterSize int, budget decimal.Decimal,
) (*Team, error) {
	if maxRosterSize == 0 {
		maxRosterSize = DefaultRosterSize
	}
	if maxRosterSize < MinRosterSize || maxRosterSize > MaxRosterSize {
		return nil, ErrTeamInvalidRosterSize
	}
	if budget.IsZero() {
		budget = DefaultBudget
	}
	if budget.IsNegative() {
		return nil, ErrTeamInvalidBudget
	}

	t := &Team{
		ID:            id,
		League:        league,
		OwnerID:       ownerID,
		Name:          name,
		Roster:        []RosterEntry{},
		MaxRosterSize: maxRosterSize,
		Budget:        budget,
		Transactions:  []TeamTransaction{},
	}
	t.recalculateBudget()
	return t, nil
}

// HasPlayer ...
func (t *Team) HasPlayer(playerID string) bool {
	return t.rosterIndex(playerID) >= 0
}

// StarterCount returns the number of players flagged as starters.
func (t *Team) StarterCount() int {
	count := 0
	for _, e := range t.Roster {
		if e.IsStarter {
			count++
		}
	}
	return count
}

// AddPlayer adds a player to the roster and logs an add transaction.
func (t *Team) AddPlayer(entry RosterEntry, now time.Time) error {
	if t.HasPlayer(entry.PlayerID) {
		return fmt.Errorf("%w: %s on team %s", ErrPlayerAlreadyOnRoster, entry.PlayerID, t.ID)
	}
	if len(t.Roster) >= t.MaxRosterSize {
		return fmt.Errorf("%w: team %s", ErrCapacityExceeded, t.ID)
	}

	now = now.UTC()
	if entry.AcquisitionDate.IsZero() {
		entry.AcquisitionDate = now
	}
	t.Roster = append(t.Roster, entry)
	t.Transactions = append(t.Transactions, TeamTransaction{
		Type:     TransactionAdd,
		PlayerID: entry.PlayerID,
		Details:  fmt.Sprintf("added via %s", entry.AcquisitionType),
		Date:     now,
	})
	t.UpdatedAt = now
	t.recalculateBudget()
	return nil
}

// RosterTrade is the outcome of an accepted trade to apply to two rosters.
type RosterTrade struct {
	InitiatorTeamID    string
	RecipientTeamID    string
	OfferedPlayerIDs   []string
	RequestedPlayerIDs []string
	At                 time.Time
}

// RosterTradeFromTrade ...
func RosterTradeFromTrade(t *Trade, at time.Time) RosterTrade {
	offered, requested := t.PlayerIDs()
	return RosterTrade{
		InitiatorTeamID:    t.Initiator.TeamID,
		RecipientTeamID:    t.Recipient.TeamID,
		OfferedPlayerIDs:   offered,
		RequestedPlayerIDs: requested,
		At:                 at,
	}
}

// ExchangePlayers moves aOut players from team a to team b and bOut players
// from team b to team a. Every precondition is checked before any roster is
// touched, so on error both teams are left unchanged.
func ExchangePlayers(a, b *Team, aOut, bOut []string, now time.Time) error {
	if err := a.checkOutgoing(aOut); err != nil {
		return err
	}
	if err := b.checkOutgoing(bOut); err != nil {
		return err
	}
	if err := a.checkIncoming(bOut, len(aOut)); err != nil {
		return err
	}
	if err := b.checkIncoming(aOut, len(bOut)); err != nil {
		return err
	}

	now = now.UTC()
	fromA := a.removePlayers(aOut)
	fromB := b.removePlayers(bOut)
	a.receivePlayers(fromB, b, now)
	b.receivePlayers(fromA, a, now)
	a.logTradedAway(aOut, b, now)
	b.logTradedAway(bOut, a, now)
	a.recalculateBudget()
	b.recalculateBudget()
	return nil
}

func (t *Team) checkOutgoing(playerIDs []string) error {
	for _, id := range playerIDs {
		if !t.HasPlayer(id) {
			return fmt.Errorf("%w: %s not on team %s", ErrPlayerNotOnRoster, id, t.ID)
		}
	}
	return nil
}

func (t *Team) checkIncoming(playerIDs []string, leaving int) error {
	for _, id := range playerIDs {
		if t.HasPlayer(id) {
			return fmt.Errorf("%w: %s on team %s", ErrPlayerAlreadyOnRoster, id, t.ID)
		}
	}
	if len(t.Roster)-leaving+len(playerIDs) > t.MaxRosterSize {
		return fmt.Errorf(
			"%w: team %s would hold %d players, max is %d",
			ErrCapacityExceeded, t.ID, len(t.Roster)-leaving+len(playerIDs),
			t.MaxRosterSize,
		)
	}
	return nil
}

func (t *Team) removePlayers(playerIDs []string) []RosterEntry {
	removed := make([]RosterEntry, 0, len(playerIDs))
	for _, id := range playerIDs {
		i := t.rosterIndex(id)
		removed = append(removed, t.Roster[i])
		t.Roster = append(t.Roster[:i:i], t.Roster[i+1:]...)
	}
	return removed
}

func (t *Team) receivePlayers(entries []RosterEntry, from *Team, now time.Time) {
	for _, e := range entries {
		e.IsStarter = false
		e.AcquisitionType = AcquisitionTrade
		e.AcquisitionDate = now
		t.Roster = append(t.Roster, e)
		t.Transactions = append(t.Transactions, TeamTransaction{
			Type:     TransactionTrade,
			PlayerID: e.PlayerID,
			Details:  fmt.Sprintf("acquired from %s", from.Name),
			Date:     now,
		})
	}
	t.UpdatedAt = now
}

func (t *Team) logTradedAway(playerIDs []string, to *Team, now time.Time) {
	for _, id := range playerIDs {
		t.Transactions = append(t.Transactions, TeamTransaction{
			Type:     TransactionTrade,
			PlayerID: id,
			Details:  fmt.Sprintf("traded to %s", to.Name),
			Date:     now,
		})
	}
}

func (t *Team) rosterIndex(playerID string) int {
	for i, e := range t.Roster {
		if e.PlayerID == playerID {
			return i
		}
	}
	return -1
}

func (t *Team) recalculateBudget() {
	used := decimal.Zero
	for _, e := range t.Roster {
		used = used.Add(e.Salary)
	}
	t.SalaryCapUsed = used
	t.RemainingBudget = t.Budget.Sub(used)
}

// Clone returns a deep copy of the team.
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	c := *t
	c.Roster = append([]RosterEntry(nil), t.Roster...)
	c.Transactions = append([]TeamTransaction(nil), t.Transactions...)
	return &c
}
