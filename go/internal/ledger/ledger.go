package ledger

import (
	"strings"
	"time"

	"github.com/mcdev12/liveauction/go/internal/models"
	"github.com/rs/zerolog/log"
)

// maxTeamNameLen bounds team display names set over the wire.
const maxTeamNameLen = 40

// TeamConfig is the static definition of a team loaded at startup.
type TeamConfig struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Pass string `yaml:"pass" json:"-"`
}

// Team holds one team's live state: display name, token balance and the
// players it has won. Balances mutate only at settlement.
type Team struct {
	ID        string
	Name      string
	pass      string
	Tokens    int
	Purchases []models.Purchase
}

// Ledger owns every team's identity, secret, balance and purchase history.
// It is not safe for concurrent use on its own; the auction engine
// serializes all access behind its writer lock.
type Ledger struct {
	teams         map[string]*Team
	order         []string
	initialTokens int
}

// New builds a ledger from static team configuration. Every team starts with
// the configured initial token balance.
func New(teams []TeamConfig, initialTokens int) *Ledger {
	l := &Ledger{
		teams:         make(map[string]*Team, len(teams)),
		order:         make([]string, 0, len(teams)),
		initialTokens: initialTokens,
	}
	for _, tc := range teams {
		l.teams[tc.ID] = &Team{
			ID:     tc.ID,
			Name:   tc.Name,
			pass:   tc.Pass,
			Tokens: initialTokens,
		}
		l.order = append(l.order, tc.ID)
	}
	return l
}

// Authenticate checks a team's secret and returns its handle.
func (l *Ledger) Authenticate(teamID, pass string) (*Team, error) {
	t, ok := l.teams[teamID]
	if !ok || t.pass != pass {
		return nil, ErrAuthenticationFailed
	}
	return t, nil
}

// Get returns the team with the given id.
func (l *Ledger) Get(teamID string) (*Team, bool) {
	t, ok := l.teams[teamID]
	return t, ok
}

// Rename updates a team's display name. The name is trimmed and truncated;
// an empty result is rejected.
func (l *Ledger) Rename(teamID, name string) error {
	t, ok := l.teams[teamID]
	if !ok {
		return ErrUnknownTeam
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if runes := []rune(name); len(runes) > maxTeamNameLen {
		name = string(runes[:maxTeamNameLen])
	}
	t.Name = name
	return nil
}

// Balance returns a team's current token balance.
func (l *Ledger) Balance(teamID string) (int, bool) {
	t, ok := l.teams[teamID]
	if !ok {
		return 0, false
	}
	return t.Tokens, true
}

// Settle debits the winning team and records the purchase. Settlement is
// one-directional; tokens are never credited back.
func (l *Ledger) Settle(teamID, player string, amount int, ts time.Time) error {
	t, ok := l.teams[teamID]
	if !ok {
		return ErrUnknownTeam
	}
	if t.Tokens < amount {
		return ErrInsufficientFunds
	}
	t.Tokens -= amount
	t.Purchases = append([]models.Purchase{{Player: player, Amount: amount, Timestamp: ts}}, t.Purchases...)
	log.Info().
		Str("team_id", teamID).
		Str("player", player).
		Int("amount", amount).
		Int("tokens_left", t.Tokens).
		Msg("purchase settled")
	return nil
}

// Reset restores every team to its initial balance and clears purchases.
// Display names are kept.
func (l *Ledger) Reset() {
	for _, t := range l.teams {
		t.Tokens = l.initialTokens
		t.Purchases = nil
	}
}

// Teams returns every team in configuration order.
func (l *Ledger) Teams() []*Team {
	out := make([]*Team, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.teams[id])
	}
	return out
}
