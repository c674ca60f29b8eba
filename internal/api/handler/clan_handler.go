package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

const maxTier10IDs = 100

type ClanHandler struct {
	clan ports.ClanService
}

func NewClanHandler(clan ports.ClanService) *ClanHandler {
	return &ClanHandler{clan: clan}
}

// Overview returns the clan header and every member with a composite score.
//
// @Summary      Clan overview
// @Tags         clan
// @Produce      json
// @Success      200  {object}  clanResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/clan [get]
func (h *ClanHandler) Overview(c echo.Context) error {
	ov, err := h.clan.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	// The clan header already carries the raw member list; the views replace it.
	clan := ov.Clan
	clan.Members = nil
	return c.JSON(http.StatusOK, clanResponse{Success: true, Clan: clan, Members: ov.Members})
}

// Members lists clan members, filtered and sorted.
//
// @Summary      List clan members
// @Tags         clan
// @Produce      json
// @Param        sort    query     string  false  "role, battles, winrate, name or score"
// @Param        role    query     string  false  "Role tag, or all"
// @Param        search  query     string  false  "Name substring"
// @Success      200     {object}  membersResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      502     {object}  ErrorResponse
// @Router       /api/clan/members [get]
func (h *ClanHandler) Members(c echo.Context) error {
	var q membersQuery
	if err := c.Bind(&q); err != nil {
		return fmt.Errorf("%w: invalid query", domain.ErrValidation)
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	views, err := h.clan.Members(c.Request().Context(), ports.MembersQuery{
		Sort:   domain.MemberSort(q.Sort),
		Role:   domain.RoleTag(q.Role),
		Search: q.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, membersResponse{Success: true, Members: views})
}

// Player returns one member's profile with a score per game mode.
//
// @Summary      Clan member detail
// @Tags         clan
// @Produce      json
// @Param        account_id  path      int  true  "Account id"
// @Success      200         {object}  playerResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Failure      502         {object}  ErrorResponse
// @Router       /api/clan/members/{account_id} [get]
func (h *ClanHandler) Player(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("account_id"), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: account_id must be a positive integer", domain.ErrValidation)
	}

	detail, err := h.clan.Player(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, playerResponse{
		Success: true,
		Member:  detail.Member,
		Profile: detail.Profile,
		Scores:  detail.Scores,
	})
}

// Tier10 counts top-tier vehicles owned by each requested account.
//
// @Summary      Tier 10 vehicle counts
// @Tags         clan
// @Produce      json
// @Param        ids  query     string  true  "Comma separated account ids"
// @Success      200  {object}  tier10Response
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /api/clan/tier10 [get]
func (h *ClanHandler) Tier10(c echo.Context) error {
	ids, err := parseIDs(c.QueryParam("ids"))
	if err != nil {
		return err
	}

	counts, err := h.clan.Tier10Counts(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tier10Response{Success: true, Counts: counts})
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: invalid account id %q", domain.ErrValidation, part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids is required", domain.ErrValidation)
	}
	if len(ids) > maxTier10IDs {
		return nil, fmt.Errorf("%w: at most %d ids per request", domain.ErrValidation, maxTier10IDs)
	}
	return ids, nil
}
