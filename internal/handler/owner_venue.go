package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strings"  // input trimming

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/matchpoint/court-booking/internal/model"      // venue model
	"github.com/matchpoint/court-booking/internal/repository" // repository sentinels
	"github.com/matchpoint/court-booking/internal/slot"       // operating-hours validation
)

type venueReq struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	OpeningTime int    `json:"opening_time"` // packed HHMM, e.g. 900
	ClosingTime int    `json:"closing_time"` // packed HHMM, e.g. 2100
}

type venueResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	OpeningTime int     `json:"opening_time"`
	ClosingTime int     `json:"closing_time"`
	Rating      float64 `json:"rating"`
	TotalRating uint32  `json:"total_rating"`
}

func toVenueResp(v *model.Venue) venueResp {
	return venueResp{
		ID:          v.ID,
		Name:        v.Name,
		Location:    v.Location,
		OpeningTime: v.OpeningTime,
		ClosingTime: v.ClosingTime,
		Rating:      v.Rating,
		TotalRating: v.TotalRating,
	}
}

// CreateVenue handles POST /v1/venues. Operating hours must be exact-hour
// packed HHMM values spanning at least one hour; rejecting anything else
// here is what keeps every slot computation downstream whole-houred.
func (h *OwnerHandler) CreateVenue(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !slot.ValidHours(req.OpeningTime, req.ClosingTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opening_time and closing_time must be exact hours (HHMM) at least one hour apart"})
	}

	v := &model.Venue{
		OwnerID:     ownerID,
		Name:        req.Name,
		Location:    req.Location,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
	}
	if err := h.VenueRepo.Create(c.Request().Context(), v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	return c.JSON(http.StatusCreated, toVenueResp(v))
}

// ListMyVenues handles GET /v1/my-venues and returns every venue owned by
// the authenticated owner.
func (h *OwnerHandler) ListMyVenues(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venues, err := h.VenueRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venues failed"})
	}
	out := make([]venueResp, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": out})
}

// UpdateVenue handles PUT /v1/venues/:id. Only the owner of the venue may
// update it; ratings are adjusted through the player rating endpoint, not
// here.
func (h *OwnerHandler) UpdateVenue(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !slot.ValidHours(req.OpeningTime, req.ClosingTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opening_time and closing_time must be exact hours (HHMM) at least one hour apart"})
	}

	ctx := c.Request().Context()
	if _, err := h.VenueRepo.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.VenueRepo.Update(ctx, id, ownerID, req.Name, req.Location, req.OpeningTime, req.ClosingTime); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update venue failed"})
	}
	v, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reload venue failed"})
	}
	return c.JSON(http.StatusOK, toVenueResp(v))
}

// DeleteVenue handles DELETE /v1/venues/:id. A venue that still has courts
// cannot be deleted; courts must be removed first.
func (h *OwnerHandler) DeleteVenue(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	err = h.VenueRepo.Delete(c.Request().Context(), id, ownerID)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "venue still has courts"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete venue failed"})
	}
}
