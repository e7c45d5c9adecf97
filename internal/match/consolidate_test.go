package match

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchpoint/court-booking/internal/model"
)

var (
	alice = model.Player{ID: 1, Name: "Alice"}
	bob   = model.Player{ID: 2, Name: "Bob"}
	carol = model.Player{ID: 3, Name: "Carol"}
	dave  = model.Player{ID: 4, Name: "Dave"}
	erin  = model.Player{ID: 5, Name: "Erin"}
)

func req(id uint64, bookingID *uint64, matchType string, createdBy model.Player, partner *model.Player) model.MatchRequest {
	return model.MatchRequest{
		ID:        id,
		BookingID: bookingID,
		MatchType: matchType,
		Status:    model.MatchStatusPending,
		CreatedBy: createdBy,
		Partner:   partner,
	}
}

func bkg(v uint64) *uint64 { return &v }

func TestConsolidateSingles(t *testing.T) {
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeSingle, alice, nil),
		req(2, bkg(10), model.MatchTypeSingle, bob, nil),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	cm := out[0]
	require.Equal(t, uint64(10), cm.BookingID)
	require.Equal(t, model.MatchTypeSingle, cm.MatchType)
	require.Equal(t, []model.Player{alice, bob}, cm.Participants)
	require.Empty(t, cm.Teams)
	require.True(t, cm.IsComplete)
}

func TestConsolidateSinglesCapsAtTwo(t *testing.T) {
	// A third player on the same singles booking does not grow the match.
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeSingle, alice, nil),
		req(2, bkg(10), model.MatchTypeSingle, bob, nil),
		req(3, bkg(10), model.MatchTypeSingle, carol, nil),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	require.Equal(t, []model.Player{alice, bob}, out[0].Participants)
	require.True(t, out[0].IsComplete)
}

func TestConsolidateDeduplicatesParticipants(t *testing.T) {
	// The same player appearing as creator of one request and partner of
	// another counts once, keeping their first-seen position.
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeDouble, alice, &bob),
		req(2, bkg(10), model.MatchTypeDouble, bob, nil),
		req(3, bkg(10), model.MatchTypeDouble, carol, &dave),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	require.Equal(t, []model.Player{alice, bob, carol, dave}, out[0].Participants)
	require.True(t, out[0].IsComplete)
}

func TestConsolidateDoublesExplicitTeams(t *testing.T) {
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeDouble, alice, &bob),
		req(2, bkg(10), model.MatchTypeDouble, carol, &dave),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	cm := out[0]
	require.Len(t, cm.Teams, 2)
	require.True(t, cm.Teams[0].same(alice.ID, bob.ID))
	require.True(t, cm.Teams[1].same(carol.ID, dave.ID))
	require.True(t, cm.IsComplete)
}

func TestConsolidateDoublesMirroredTeamRecordedOnce(t *testing.T) {
	// Bob declaring Alice as partner mirrors Alice declaring Bob; the
	// team is unordered and must not be recorded twice.
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeDouble, alice, &bob),
		req(2, bkg(10), model.MatchTypeDouble, bob, &alice),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	require.Len(t, out[0].Teams, 1)
	require.True(t, out[0].Teams[0].same(alice.ID, bob.ID))
}

func TestConsolidateDoublesAdHocPairing(t *testing.T) {
	// Four solo requests: teams form by arrival order.
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeDouble, alice, nil),
		req(2, bkg(10), model.MatchTypeDouble, bob, nil),
		req(3, bkg(10), model.MatchTypeDouble, carol, nil),
		req(4, bkg(10), model.MatchTypeDouble, dave, nil),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	cm := out[0]
	require.Len(t, cm.Teams, 2)
	require.True(t, cm.Teams[0].same(alice.ID, bob.ID))
	require.True(t, cm.Teams[1].same(carol.ID, dave.ID))
	require.True(t, cm.IsComplete)
}

func TestConsolidateDoublesOddLeftoverUnpaired(t *testing.T) {
	// One explicit team plus a single solo request: the solo player has
	// no one to pair with and stays teamless.
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeDouble, alice, &bob),
		req(2, bkg(10), model.MatchTypeDouble, carol, nil),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	cm := out[0]
	require.Equal(t, []model.Player{alice, bob, carol}, cm.Participants)
	require.Len(t, cm.Teams, 1)
	require.True(t, cm.Teams[0].same(alice.ID, bob.ID))
	require.False(t, cm.IsComplete)
}

func TestConsolidateDoublesCapsAtFour(t *testing.T) {
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeDouble, alice, &bob),
		req(2, bkg(10), model.MatchTypeDouble, carol, &dave),
		req(3, bkg(10), model.MatchTypeDouble, erin, nil),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	require.Len(t, out[0].Participants, 4)
	require.NotContains(t, out[0].Participants, erin)
	require.True(t, out[0].IsComplete)
}

func TestConsolidateSkipsUnanchoredRequests(t *testing.T) {
	requests := []model.MatchRequest{
		req(1, nil, model.MatchTypeSingle, alice, nil),
		req(2, bkg(10), model.MatchTypeSingle, bob, nil),
	}

	out := Consolidate(requests)
	require.Len(t, out, 1)
	require.Equal(t, []model.Player{bob}, out[0].Participants)
	require.False(t, out[0].IsComplete)
}

func TestConsolidateSeparatesTypesOnSameBooking(t *testing.T) {
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeSingle, alice, nil),
		req(2, bkg(10), model.MatchTypeDouble, bob, nil),
	}

	out := Consolidate(requests)
	require.Len(t, out, 2)
	require.Equal(t, model.MatchTypeSingle, out[0].MatchType)
	require.Equal(t, model.MatchTypeDouble, out[1].MatchType)
}

func TestConsolidateDeterministicOnStableInput(t *testing.T) {
	requests := []model.MatchRequest{
		req(1, bkg(10), model.MatchTypeDouble, alice, nil),
		req(2, bkg(11), model.MatchTypeDouble, bob, &carol),
		req(3, bkg(10), model.MatchTypeDouble, dave, nil),
	}

	first := Consolidate(requests)
	second := Consolidate(requests)
	require.Equal(t, first, second)
}

func TestNeedingPlayers(t *testing.T) {
	requests := []model.MatchRequest{
		// booking 10: full doubles
		req(1, bkg(10), model.MatchTypeDouble, alice, &bob),
		req(2, bkg(10), model.MatchTypeDouble, carol, &dave),
		// booking 11: only two of four
		req(3, bkg(11), model.MatchTypeDouble, erin, nil),
		req(4, bkg(11), model.MatchTypeDouble, alice, nil),
		// singles never show up as joinable doubles
		req(5, bkg(12), model.MatchTypeSingle, bob, nil),
		// unanchored doubles cannot be joined
		req(6, nil, model.MatchTypeDouble, carol, nil),
	}

	out := NeedingPlayers(requests)
	require.Len(t, out, 2)
	require.Equal(t, uint64(3), out[0].ID)
	require.Equal(t, uint64(4), out[1].ID)
}

func TestNeedingPlayersSkipsMatched(t *testing.T) {
	matched := req(1, bkg(10), model.MatchTypeDouble, alice, nil)
	matched.Status = model.MatchStatusMatched
	out := NeedingPlayers([]model.MatchRequest{matched})
	require.Empty(t, out)
}
