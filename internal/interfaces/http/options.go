package http

import (
	"net/http"

	appoptions "optionsdesk/internal/application/service/options"

	"github.com/gin-gonic/gin"
)

type expiriesResponse struct {
	Symbol   string   `json:"symbol"`
	Expiries []string `json:"expiries"`
}

// getChain returns the chain at one expiry together with its summary
// @Summary      Get option chain
// @Description  Fetch, normalize and summarize the option chain of an underlying. Falls back to the earliest expiry when expiry is missing or unknown.
// @Tags         options
// @Produce      json
// @Param        symbol  query     string  true   "Underlying symbol, e.g. NIFTY"
// @Param        expiry  query     string  false  "Expiry in YYYY-MM-DD"
// @Success      200     {object}  appoptions.ChainView
// @Failure      400     {object}  map[string]string
// @Failure      502     {object}  map[string]interface{}
// @Failure      500     {object}  map[string]string
// @Router       /options/chain [get]
func (h *Handler) getChain(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	view, err := h.options.GetChainWithSummary(c.Request.Context(), symbol, c.Query("expiry"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// getSummary returns only the chain analytics
// @Summary      Get chain summary
// @Tags         options
// @Produce      json
// @Param        symbol  query     string  true   "Underlying symbol"
// @Param        expiry  query     string  false  "Expiry in YYYY-MM-DD"
// @Success      200     {object}  options.ChainSummary
// @Failure      400     {object}  map[string]string
// @Failure      502     {object}  map[string]interface{}
// @Router       /options/summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	summary, err := h.options.GetSummary(c.Request.Context(), symbol, c.Query("expiry"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getExpiries lists the expiries the feed carries
// @Summary      List expiries
// @Tags         options
// @Produce      json
// @Param        symbol  query     string  true  "Underlying symbol"
// @Success      200     {object}  expiriesResponse
// @Failure      400     {object}  map[string]string
// @Failure      502     {object}  map[string]interface{}
// @Router       /options/expiries [get]
func (h *Handler) getExpiries(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	expiries, err := h.options.GetExpiries(c.Request.Context(), symbol)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, expiriesResponse{Symbol: appoptions.NormalizeSymbol(symbol), Expiries: expiries})
}

// getHistory returns recent summary snapshots
// @Summary      Summary history
// @Description  Most recent summary snapshots recorded by the refresher, newest first
// @Tags         options
// @Produce      json
// @Param        symbol  query     string  true   "Underlying symbol"
// @Param        limit   query     int     false  "Max snapshots (default 50)"
// @Success      200     {array}   options.SummarySnapshot
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /options/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	limit, err := parseIntQuery(c, "limit", defaultHistoryN)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	snapshots, err := h.history.GetLastSnapshots(c.Request.Context(), symbol, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}
