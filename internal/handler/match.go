package handler

import (
	"database/sql" // sentinel comparison for missing partner rows
	"errors"       // errors.Is comparisons against repository sentinels
	"net/http"     // HTTP status codes

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/matchpoint/court-booking/internal/match"      // consolidation of match requests
	"github.com/matchpoint/court-booking/internal/model"      // match request model and constants
	"github.com/matchpoint/court-booking/internal/repository" // match request persistence
)

// MatchHandler exposes the match request lifecycle: players advertise that
// they want a singles or doubles game, others accept, and the consolidated
// view shows who ended up playing with whom.
type MatchHandler struct {
	MatchRepo   *repository.MatchRequestRepo // match request persistence
	BookingRepo *repository.BookingRepo      // booking lookups for anchoring requests
	UserRepo    *repository.UserRepo         // partner existence checks
}

// NewMatchHandler constructs a MatchHandler. All dependencies must be non-nil.
func NewMatchHandler(matchRepo *repository.MatchRequestRepo, bookingRepo *repository.BookingRepo, userRepo *repository.UserRepo) *MatchHandler {
	if matchRepo == nil || bookingRepo == nil || userRepo == nil {
		panic("nil dependency passed to NewMatchHandler")
	}
	return &MatchHandler{MatchRepo: matchRepo, BookingRepo: bookingRepo, UserRepo: userRepo}
}

type createMatchReq struct {
	MatchType string  `json:"match_type"`
	BookingID *uint64 `json:"booking_id"` // required for doubles
	PartnerID *uint64 `json:"partner_id"` // pre-selected teammate, doubles only
}

// Create handles POST /v1/match-requests. Doubles must reference a booking
// so all four players land on the same committed slot; singles may float
// without one.
func (h *MatchHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createMatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.MatchType != model.MatchTypeSingle && req.MatchType != model.MatchTypeDouble {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "match_type must be single or double"})
	}
	if req.MatchType == model.MatchTypeDouble && req.BookingID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "doubles require a booking_id"})
	}
	if req.PartnerID != nil && req.MatchType != model.MatchTypeDouble {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "partner_id is only valid for doubles"})
	}
	if req.PartnerID != nil && *req.PartnerID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot partner with yourself"})
	}

	ctx := c.Request().Context()
	if req.BookingID != nil {
		if _, err := h.BookingRepo.GetByID(ctx, *req.BookingID); err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	m := &model.MatchRequest{
		BookingID: req.BookingID,
		MatchType: req.MatchType,
		Status:    model.MatchStatusPending,
		CreatedBy: model.Player{ID: userID},
	}
	if req.PartnerID != nil {
		if _, err := h.UserRepo.GetByID(ctx, *req.PartnerID); err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "partner not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		m.Partner = &model.Player{ID: *req.PartnerID}
	}

	if err := h.MatchRepo.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create match request failed"})
	}
	created, err := h.MatchRepo.GetByID(ctx, m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reload match request failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// ListConsolidated handles GET /v1/matches. Pending requests are merged
// per (booking, match type) into one entry with deduplicated participants
// and, for doubles, the team pairings.
func (h *MatchHandler) ListConsolidated(c echo.Context) error {
	pending, err := h.MatchRepo.ListByStatus(c.Request().Context(), model.MatchStatusPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list match requests failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"matches": match.Consolidate(pending)})
}

// ListJoinable handles GET /v1/matches/joinable and returns the pending
// doubles requests whose slot still needs players.
func (h *MatchHandler) ListJoinable(c echo.Context) error {
	pending, err := h.MatchRepo.ListByStatus(c.Request().Context(), model.MatchStatusPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list match requests failed"})
	}
	joinable := match.NeedingPlayers(pending)
	return c.JSON(http.StatusOK, echo.Map{"requests": joinable})
}

// Accept handles POST /v1/match-requests/:id/accept. The request flips to
// matched; when no partner was pre-selected the accepter is recorded as
// partner. Matched is terminal, so a second accept gets a 409.
func (h *MatchHandler) Accept(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match request id"})
	}

	ctx := c.Request().Context()
	m, err := h.MatchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchRequestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if m.CreatedBy.ID == userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot accept your own request"})
	}

	err = h.MatchRepo.Accept(ctx, id, userID)
	switch {
	case err == nil:
		// reload below with hydrated names
	case errors.Is(err, repository.ErrMatchRequestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "match request not found"})
	case errors.Is(err, repository.ErrAlreadyMatched):
		return c.JSON(http.StatusConflict, echo.Map{"error": "match request already matched"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept match request failed"})
	}

	accepted, err := h.MatchRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reload match request failed"})
	}
	return c.JSON(http.StatusOK, accepted)
}

// Cancel handles DELETE /v1/match-requests/:id. Only the creator may
// cancel, and only while the request is still pending.
func (h *MatchHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match request id"})
	}

	err = h.MatchRepo.DeletePending(c.Request().Context(), id, userID)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrMatchRequestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "match request not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your match request"})
	case errors.Is(err, repository.ErrAlreadyMatched):
		return c.JSON(http.StatusConflict, echo.Map{"error": "match request already matched"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel match request failed"})
	}
}
