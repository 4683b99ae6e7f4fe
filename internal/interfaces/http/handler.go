// @title           Options Desk API
// @version         1.0
// @description     Normalized option chains, chain analytics and tracked underlyings
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	appoptions "optionsdesk/internal/application/service/options"
	options "optionsdesk/internal/domain/entity/options"
	domainunderlyings "optionsdesk/internal/domain/entity/underlyings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	apiBasePath       = "/api/v1"
	defaultHistoryN   = 50
	upstreamStatusKey = "upstream_status"
)

var (
	errMissingUID    = errors.New("missing uid")
	errMissingSymbol = errors.New("symbol query param required")
)

type OptionsService interface {
	GetChainWithSummary(ctx context.Context, symbol, expiry string) (*appoptions.ChainView, error)
	GetSummary(ctx context.Context, symbol, expiry string) (options.ChainSummary, error)
	GetExpiries(ctx context.Context, symbol string) ([]string, error)
}

type UnderlyingsService interface {
	CreateUnderlying(ctx context.Context, underlying *domainunderlyings.Underlying) error
	GetUnderlying(ctx context.Context, uid uuid.UUID) (*domainunderlyings.Underlying, error)
	ListUnderlyings(ctx context.Context, activeOnly bool) ([]domainunderlyings.Underlying, error)
	UpdateUnderlying(ctx context.Context, underlying *domainunderlyings.Underlying) error
	DeleteUnderlying(ctx context.Context, uid uuid.UUID) error
}

type HistoryService interface {
	GetLastSnapshots(ctx context.Context, symbol string, limit int) ([]options.SummarySnapshot, error)
}

// Deps wires the handler. Underlyings and History are optional; their
// routes are only registered when set.
type Deps struct {
	Options     OptionsService
	Underlyings UnderlyingsService
	History     HistoryService
	Logger      *logrus.Logger
}

type Handler struct {
	router      *gin.Engine
	options     OptionsService
	underlyings UnderlyingsService
	history     HistoryService
	logger      *logrus.Entry
}

func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
	}
	router := gin.New()

	h := &Handler{
		router:      router,
		options:     deps.Options,
		underlyings: deps.Underlyings,
		history:     deps.History,
		logger:      logger.WithField("component", "http"),
	}
	router.Use(gin.Recovery(), h.requestLogger(), zstdMiddleware())
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.router.GET("/healthz", h.healthz)

	api := h.router.Group(apiBasePath)

	opts := api.Group("/options")
	{
		opts.GET("/chain", h.getChain)
		opts.GET("/summary", h.getSummary)
		opts.GET("/expiries", h.getExpiries)
		if h.history != nil {
			opts.GET("/history", h.getHistory)
		}
	}

	if h.underlyings != nil {
		u := api.Group("/underlyings")
		{
			u.POST("", h.createUnderlying)
			u.GET("", h.listUnderlyings)
			u.GET("/:uid", h.getUnderlying)
			u.PUT("/:uid", h.updateUnderlying)
			u.DELETE("/:uid", h.deleteUnderlying)
		}
	}
}

// healthz reports liveness
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseUIDParam(c *gin.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return uuid.Nil, errMissingUID
	}
	return uid, nil
}

func parseIntQuery(c *gin.Context, key string, fallback int) (int, error) {
	value := c.Query(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
