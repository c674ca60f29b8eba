package handler

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

type TeamHandler struct {
	rosters  ports.RosterService
	exporter ports.TeamExporter
	log      zerolog.Logger
}

func NewTeamHandler(rosters ports.RosterService, exporter ports.TeamExporter, log zerolog.Logger) *TeamHandler {
	return &TeamHandler{rosters: rosters, exporter: exporter, log: log}
}

// Get returns one owner's roster.
//
// @Summary      Get a team roster
// @Tags         teams
// @Produce      json
// @Param        owner  path      string  true  "Team owner"
// @Success      200    {object}  teamResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /api/teams/{owner} [get]
func (h *TeamHandler) Get(c echo.Context) error {
	t, err := h.rosters.Get(c.Request().Context(), c.Param("owner"))
	if err != nil {
		return err
	}
	members := t.Members
	if members == nil {
		members = []domain.Member{}
	}
	return c.JSON(http.StatusOK, teamResponse{Success: true, Team: members, Version: t.Version})
}

// Save replaces one owner's roster.
//
// @Summary      Replace a team roster
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        owner  path      string           true  "Team owner"
// @Param        body   body      saveTeamRequest  true  "Full roster"
// @Success      200    {object}  ackResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Router       /api/teams/{owner} [post]
func (h *TeamHandler) Save(c echo.Context) error {
	var req saveTeamRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t, err := h.rosters.Save(c.Request().Context(), c.Param("owner"), req.Team)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Success: true, Version: t.Version})
}

// Delete removes one owner's roster.
//
// @Summary      Delete a team roster
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        owner  path      string  true  "Team owner"
// @Success      200    {object}  ackResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Router       /api/teams/{owner} [delete]
func (h *TeamHandler) Delete(c echo.Context) error {
	if err := h.rosters.Delete(c.Request().Context(), c.Param("owner")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ackResponse{Success: true})
}

// List returns every stored roster with its version and any double bookings.
//
// @Summary      List all team rosters
// @Tags         teams
// @Produce      json
// @Success      200  {object}  teamsResponse
// @Router       /api/teams [get]
func (h *TeamHandler) List(c echo.Context) error {
	listing, err := h.rosters.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTeamsResponse(listing.Teams, listing.Conflicts))
}

// Export renders a roster as a downloadable text sheet.
//
// @Summary      Export a team roster
// @Tags         teams
// @Produce      plain
// @Param        owner  path      string  true  "Team owner"
// @Success      200    {string}  string
// @Failure      404    {object}  ErrorResponse
// @Failure      502    {object}  ErrorResponse
// @Router       /api/teams/{owner}/export [get]
func (h *TeamHandler) Export(c echo.Context) error {
	out, err := h.exporter.ExportTeam(c.Request().Context(), c.Param("owner"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename}))
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(out.Body))
}
