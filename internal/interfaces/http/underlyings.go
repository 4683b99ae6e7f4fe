package http

import (
	"net/http"

	domainunderlyings "optionsdesk/internal/domain/entity/underlyings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type underlyingPayload struct {
	Symbol   string `json:"symbol" binding:"required"`
	Exchange string `json:"exchange"`
	Kind     string `json:"kind" binding:"required"`
	Active   *bool  `json:"active"`
}

func (p underlyingPayload) toDomain(uid uuid.UUID) (*domainunderlyings.Underlying, error) {
	kind, err := domainunderlyings.NewKind(p.Kind)
	if err != nil {
		return nil, err
	}
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return &domainunderlyings.Underlying{
		UID:      uid,
		Symbol:   p.Symbol,
		Exchange: p.Exchange,
		Kind:     kind,
		Active:   active,
	}, nil
}

// createUnderlying registers a tracked underlying
// @Summary      Create underlying
// @Tags         underlyings
// @Accept       json
// @Produce      json
// @Param        underlying  body      underlyingPayload  true  "Underlying data"
// @Success      201         {object}  domainunderlyings.Underlying
// @Failure      400         {object}  map[string]string
// @Failure      409         {object}  map[string]string
// @Router       /underlyings [post]
func (h *Handler) createUnderlying(c *gin.Context) {
	var payload underlyingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	u, err := payload.toDomain(uuid.Nil)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.underlyings.CreateUnderlying(c.Request.Context(), u); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// listUnderlyings lists tracked underlyings
// @Summary      List underlyings
// @Tags         underlyings
// @Produce      json
// @Param        active  query     bool  false  "Only active underlyings"
// @Success      200     {array}   domainunderlyings.Underlying
// @Failure      500     {object}  map[string]string
// @Router       /underlyings [get]
func (h *Handler) listUnderlyings(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	list, err := h.underlyings.ListUnderlyings(c.Request.Context(), activeOnly)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []domainunderlyings.Underlying{}
	}
	c.JSON(http.StatusOK, list)
}

// getUnderlying returns one underlying
// @Summary      Get underlying
// @Tags         underlyings
// @Produce      json
// @Param        uid  path      string  true  "Underlying UID"
// @Success      200  {object}  domainunderlyings.Underlying
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /underlyings/{uid} [get]
func (h *Handler) getUnderlying(c *gin.Context) {
	uid, err := parseUIDParam(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	u, err := h.underlyings.GetUnderlying(c.Request.Context(), uid)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// updateUnderlying replaces an underlying
// @Summary      Update underlying
// @Tags         underlyings
// @Accept       json
// @Produce      json
// @Param        uid         path      string             true  "Underlying UID"
// @Param        underlying  body      underlyingPayload  true  "Underlying data"
// @Success      200         {object}  domainunderlyings.Underlying
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Failure      409         {object}  map[string]string
// @Router       /underlyings/{uid} [put]
func (h *Handler) updateUnderlying(c *gin.Context) {
	uid, err := parseUIDParam(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	var payload underlyingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	u, err := payload.toDomain(uid)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.underlyings.UpdateUnderlying(c.Request.Context(), u); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// deleteUnderlying removes an underlying
// @Summary      Delete underlying
// @Tags         underlyings
// @Param        uid  path  string  true  "Underlying UID"
// @Success      204  "No Content"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /underlyings/{uid} [delete]
func (h *Handler) deleteUnderlying(c *gin.Context) {
	uid, err := parseUIDParam(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.underlyings.DeleteUnderlying(c.Request.Context(), uid); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
