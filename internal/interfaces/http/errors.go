package http

import (
	"context"
	"errors"
	"net/http"

	apphistory "optionsdesk/internal/application/service/history"
	appoptions "optionsdesk/internal/application/service/options"
	appunderlyings "optionsdesk/internal/application/service/underlyings"
	"optionsdesk/internal/domain/optionchain"
	"optionsdesk/internal/infrastructure/scanner"
	infraunderlyings "optionsdesk/internal/infrastructure/underlyings"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service and infrastructure errors to HTTP statuses.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var upstream *scanner.UpstreamError
	switch {
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), upstreamStatusKey: upstream.StatusCode})
		return
	case errors.Is(err, optionchain.ErrUnsupportedSchema), errors.Is(err, optionchain.ErrRecordMisaligned):
		writeError(c, http.StatusBadGateway, err)
		return
	case errors.Is(err, appoptions.ErrEmptySymbol),
		errors.Is(err, scanner.ErrEmptySymbol),
		errors.Is(err, appunderlyings.ErrNilUnderlying),
		errors.Is(err, appunderlyings.ErrEmptySymbol),
		errors.Is(err, appunderlyings.ErrInvalidKind),
		errors.Is(err, apphistory.ErrEmptySymbol),
		errors.Is(err, apphistory.ErrInvalidLimit):
		writeError(c, http.StatusBadRequest, err)
		return
	case errors.Is(err, infraunderlyings.ErrUnderlyingNotFound):
		writeError(c, http.StatusNotFound, err)
		return
	case errors.Is(err, infraunderlyings.ErrUnderlyingExists):
		writeError(c, http.StatusConflict, err)
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, err)
		return
	}
	h.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	writeError(c, http.StatusInternalServerError, err)
}
