package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strings"  // query parameter trimming

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/matchpoint/court-booking/internal/repository" // venue and court lookups
	"github.com/matchpoint/court-booking/internal/slot"       // slot grid computation
)

// PublicHandler serves unauthenticated browse endpoints: venue listings,
// court listings and the per-day availability grid. These routes sit
// behind the response cache and the rate limiter.
type PublicHandler struct {
	VenueRepo *repository.VenueRepo // venue listings and detail
	CourtRepo *repository.CourtRepo // courts per venue
	Engine    *slot.Engine          // availability grid
}

// NewPublicHandler constructs a PublicHandler. All dependencies must be non-nil.
func NewPublicHandler(venueRepo *repository.VenueRepo, courtRepo *repository.CourtRepo, engine *slot.Engine) *PublicHandler {
	if venueRepo == nil || courtRepo == nil || engine == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{VenueRepo: venueRepo, CourtRepo: courtRepo, Engine: engine}
}

// ListVenues handles GET /v1/venues.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	venues, err := h.VenueRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venues failed"})
	}
	out := make([]venueResp, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": out})
}

// GetVenue handles GET /v1/venues/:id.
func (h *PublicHandler) GetVenue(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	v, err := h.VenueRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toVenueResp(v))
}

// ListVenueCourts handles GET /v1/venues/:id/courts.
func (h *PublicHandler) ListVenueCourts(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	ctx := c.Request().Context()
	if _, err := h.VenueRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	courts, err := h.CourtRepo.ListByVenue(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list courts failed"})
	}
	type courtResp struct {
		ID   uint64 `json:"id"`
		Name string `json:"name"`
	}
	out := make([]courtResp, 0, len(courts))
	for _, court := range courts {
		out = append(out, courtResp{ID: court.ID, Name: court.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"venue_id": id, "courts": out})
}

// ListSlots handles GET /v1/courts/:id/slots?date=YYYY-MM-DD and returns
// one entry per operating hour with booking status. A venue whose hours
// span no whole hour yields an empty grid rather than an error.
func (h *PublicHandler) ListSlots(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))

	slots, err := h.Engine.ListSlots(c.Request().Context(), id, date)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"court_id": id, "date": date, "slots": slots})
	case errors.Is(err, slot.ErrMalformedDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	case errors.Is(err, repository.ErrCourtNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list slots failed"})
	}
}
