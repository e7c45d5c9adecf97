// Package match transforms flat, possibly-redundant lists of match
// requests into deduplicated, team-aware views. Everything here is a pure
// function: no store calls, no mutation of the input.
//
// Determinism caveat: output order and ad-hoc team assignment follow the
// input order. The request-listing collaborator must return a stable order
// (the repository orders by id ascending) for consolidation to be
// reproducible across calls.
package match

import "github.com/matchpoint/court-booking/internal/model"

// Participant caps per match type: singles is a strict 1v1, doubles a 2v2.
const (
	singlesSize = 2
	doublesSize = 4
)

// Team is an unordered pair of players. {A,B} and {B,A} are the same team.
type Team struct {
	A model.Player `json:"a"`
	B model.Player `json:"b"`
}

// same reports whether the team contains exactly the two given user IDs,
// in either order.
func (t Team) same(x, y uint64) bool {
	return (t.A.ID == x && t.B.ID == y) || (t.A.ID == y && t.B.ID == x)
}

// ConsolidatedMatch merges all match requests anchored to one booking and
// match type into a single display view. Participants are deduplicated by
// user ID in first-seen order. Teams are populated for doubles only.
type ConsolidatedMatch struct {
	BookingID    uint64         `json:"booking_id"`
	MatchType    string         `json:"match_type"`
	Participants []model.Player `json:"participants"`
	Teams        []Team         `json:"teams,omitempty"`
	IsComplete   bool           `json:"is_complete"`
}

// groupKey identifies one (booking, match type) consolidation group.
type groupKey struct {
	bookingID uint64
	matchType string
}

// Consolidate groups the given requests by booking ID and match type and
// merges each group into one ConsolidatedMatch. Requests without a booking
// have no anchor and are skipped; callers show those individually.
// Output order is the order each (booking, type) pair is first seen while
// scanning the input.
func Consolidate(requests []model.MatchRequest) []ConsolidatedMatch {
	var order []groupKey
	groups := make(map[groupKey][]model.MatchRequest)
	for _, req := range requests {
		if req.BookingID == nil {
			continue
		}
		key := groupKey{bookingID: *req.BookingID, matchType: req.MatchType}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], req)
	}

	out := make([]ConsolidatedMatch, 0, len(order))
	for _, key := range order {
		group := groups[key]
		var cm ConsolidatedMatch
		if key.matchType == model.MatchTypeDouble {
			cm = mergeDoubles(group)
		} else {
			cm = mergeSingles(group)
		}
		cm.BookingID = key.bookingID
		cm.MatchType = key.matchType
		out = append(out, cm)
	}
	return out
}

// mergeSingles collects up to two distinct participants across the group,
// first-seen order, from each request's creator and partner fields.
func mergeSingles(group []model.MatchRequest) ConsolidatedMatch {
	seen := make(map[uint64]bool)
	participants := make([]model.Player, 0, singlesSize)
	for _, req := range group {
		for _, p := range requestPlayers(req) {
			if len(participants) == singlesSize {
				break
			}
			if !seen[p.ID] {
				seen[p.ID] = true
				participants = append(participants, p)
			}
		}
	}
	return ConsolidatedMatch{
		Participants: participants,
		IsComplete:   len(participants) == singlesSize,
	}
}

// mergeDoubles collects all distinct participants in first-seen order,
// derives explicit teams from requests carrying both creator and partner,
// then pairs the leftover participants sequentially by arrival order. The
// final participant list is capped at four.
//
// The arrival-order fallback is a heuristic, not a guaranteed-correct
// pairing: if more than one unrelated ad-hoc group shares a booking it can
// mis-pair players. It stays for legacy requests that carry no explicit
// partner link.
func mergeDoubles(group []model.MatchRequest) ConsolidatedMatch {
	seen := make(map[uint64]bool)
	var participants []model.Player
	var teams []Team

	for _, req := range group {
		for _, p := range requestPlayers(req) {
			if !seen[p.ID] {
				seen[p.ID] = true
				participants = append(participants, p)
			}
		}
		if req.Partner != nil {
			if !teamRecorded(teams, req.CreatedBy.ID, req.Partner.ID) {
				teams = append(teams, Team{A: req.CreatedBy, B: *req.Partner})
			}
		}
	}

	// Pair participants not covered by an explicit team, in collection
	// order. An odd leftover stays unpaired.
	teamed := make(map[uint64]bool, len(teams)*2)
	for _, t := range teams {
		teamed[t.A.ID] = true
		teamed[t.B.ID] = true
	}
	var loose []model.Player
	for _, p := range participants {
		if !teamed[p.ID] {
			loose = append(loose, p)
		}
	}
	for i := 0; i+1 < len(loose); i += 2 {
		teams = append(teams, Team{A: loose[i], B: loose[i+1]})
	}

	if len(participants) > doublesSize {
		participants = participants[:doublesSize]
	}
	return ConsolidatedMatch{
		Participants: participants,
		Teams:        teams,
		IsComplete:   len(participants) == doublesSize,
	}
}

// NeedingPlayers filters pending doubles requests whose consolidated
// participant count, taken across all related requests for the same
// booking, is still below four. It surfaces "joinable" matches distinct
// from complete ones.
func NeedingPlayers(pending []model.MatchRequest) []model.MatchRequest {
	counts := make(map[uint64]int)
	for _, cm := range Consolidate(pending) {
		if cm.MatchType == model.MatchTypeDouble {
			counts[cm.BookingID] = len(cm.Participants)
		}
	}
	out := make([]model.MatchRequest, 0)
	for _, req := range pending {
		if req.Status != model.MatchStatusPending || req.MatchType != model.MatchTypeDouble {
			continue
		}
		if req.BookingID == nil {
			continue
		}
		if counts[*req.BookingID] < doublesSize {
			out = append(out, req)
		}
	}
	return out
}

// requestPlayers lists the players referenced by one request: the creator,
// then the partner when present.
func requestPlayers(req model.MatchRequest) []model.Player {
	players := []model.Player{req.CreatedBy}
	if req.Partner != nil {
		players = append(players, *req.Partner)
	}
	return players
}

func teamRecorded(teams []Team, a, b uint64) bool {
	for _, t := range teams {
		if t.same(a, b) {
			return true
		}
	}
	return false
}
