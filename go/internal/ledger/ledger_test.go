package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLedger() *Ledger {
	return New([]TeamConfig{
		{ID: "TEAM1", Name: "Team 1", Pass: "leopard"},
		{ID: "TEAM2", Name: "Team 2", Pass: "tiger"},
	}, 1000)
}

func TestAuthenticate(t *testing.T) {
	l := testLedger()

	team, err := l.Authenticate("TEAM1", "leopard")
	require.NoError(t, err)
	assert.Equal(t, "TEAM1", team.ID)
	assert.Equal(t, 1000, team.Tokens)

	_, err = l.Authenticate("TEAM1", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = l.Authenticate("NOPE", "leopard")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestRename(t *testing.T) {
	l := testLedger()

	require.NoError(t, l.Rename("TEAM1", "  The Leopards  "))
	team, _ := l.Get("TEAM1")
	assert.Equal(t, "The Leopards", team.Name)

	err := l.Rename("TEAM1", "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, "The Leopards", team.Name)

	assert.ErrorIs(t, l.Rename("NOPE", "x"), ErrUnknownTeam)
}

func TestRenameTruncates(t *testing.T) {
	l := testLedger()

	long := strings.Repeat("a", 60)
	require.NoError(t, l.Rename("TEAM1", long))
	team, _ := l.Get("TEAM1")
	assert.Len(t, team.Name, maxTeamNameLen)
}

func TestSettle(t *testing.T) {
	l := testLedger()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, l.Settle("TEAM1", "Messi", 300, ts))

	team, _ := l.Get("TEAM1")
	assert.Equal(t, 700, team.Tokens)
	require.Len(t, team.Purchases, 1)
	assert.Equal(t, "Messi", team.Purchases[0].Player)
	assert.Equal(t, 300, team.Purchases[0].Amount)
	assert.Equal(t, ts, team.Purchases[0].Timestamp)

	// Purchases are most-recent-first.
	require.NoError(t, l.Settle("TEAM1", "Ronaldo", 200, ts.Add(time.Minute)))
	assert.Equal(t, "Ronaldo", team.Purchases[0].Player)
	assert.Equal(t, "Messi", team.Purchases[1].Player)
}

func TestSettleInsufficientFunds(t *testing.T) {
	l := testLedger()

	err := l.Settle("TEAM1", "Messi", 1500, time.Now())
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	team, _ := l.Get("TEAM1")
	assert.Equal(t, 1000, team.Tokens)
	assert.Empty(t, team.Purchases)
}

func TestReset(t *testing.T) {
	l := testLedger()
	require.NoError(t, l.Settle("TEAM1", "Messi", 300, time.Now()))
	require.NoError(t, l.Rename("TEAM1", "The Leopards"))

	l.Reset()

	team, _ := l.Get("TEAM1")
	assert.Equal(t, 1000, team.Tokens)
	assert.Empty(t, team.Purchases)
	// Reset restores balances, not names.
	assert.Equal(t, "The Leopards", team.Name)
}

func TestTeamsOrder(t *testing.T) {
	l := testLedger()

	teams := l.Teams()
	require.Len(t, teams, 2)
	assert.Equal(t, "TEAM1", teams[0].ID)
	assert.Equal(t, "TEAM2", teams[1].ID)
}
