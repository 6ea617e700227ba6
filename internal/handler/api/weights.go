package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"EvalPull/internal/domain/models"
	domrepo "EvalPull/internal/domain/repository"
	icache "EvalPull/internal/service/cache"
	"EvalPull/internal/service/ratelimit"
	"EvalPull/internal/usecase"
	xhttp "EvalPull/pkg/http"
	xlogger "EvalPull/pkg/logger"
	xutil "EvalPull/pkg/util"

	"github.com/labstack/echo/v4"
)

// WeightsEchoHandler exposes the evaluation pipeline over HTTP.
type WeightsEchoHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.EvaluationPipeline
	obs      domrepo.ObservationStore
	store    domrepo.WeightStore
	pub      domrepo.WeightPublisher // nil when kafka is disabled
	cache    icache.BytesCache
	limiter  *ratelimit.Limiter
	cacheTTL time.Duration
	rateRPS  float64
	health   func(ctx context.Context) error
}

func NewWeightsEchoHandler(
	logger *xlogger.Logger,
	pipeline *usecase.EvaluationPipeline,
	obs domrepo.ObservationStore,
	store domrepo.WeightStore,
	pub domrepo.WeightPublisher,
	cache icache.BytesCache,
	cacheTTL time.Duration,
	rateRPS float64,
	health func(ctx context.Context) error,
) *WeightsEchoHandler {
	return &WeightsEchoHandler{
		logger:   logger,
		pipeline: pipeline,
		obs:      obs,
		store:    store,
		pub:      pub,
		cache:    cache,
		limiter:  ratelimit.New(),
		cacheTTL: cacheTTL,
		rateRPS:  rateRPS,
		health:   health,
	}
}

func (h *WeightsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/weights", h.Weights)
	g.GET("/observations", h.Observations)
	e.GET("/healthz", h.Healthz)
}

func (h *WeightsEchoHandler) Weights(c echo.Context) error {
	req := &models.WeightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.rateRPS > 0 && !h.limiter.Allow(c.RealIP(), h.rateRPS, h.rateRPS) {
		return xhttp.TooManyRequestsResponse(c)
	}

	assets := splitAssets(req.Assets)
	if len(assets) == 0 {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code: "ERR_REQUIRED", Field: "assets", Message: "Assets is required",
		}})
	}

	key := icache.WeightsKey(assets, req.LookbackDays, req.EvaluationRange, req.Scope, req.ZeroPolicy)
	if h.cache != nil && !req.Persist {
		if b, ok, err := h.cache.GetBytes(key); err == nil && ok {
			var cached []models.ModelWeight
			if json.Unmarshal(b, &cached) == nil {
				return xhttp.SuccessResponse(c, cached)
			}
		}
	}

	weights, err := h.pipeline.EvaluateAndWeight(c.Request().Context(), usecase.EvaluationParams{
		Assets:          assets,
		LookbackDays:    req.LookbackDays,
		EvaluationRange: req.EvaluationRange,
		Scope:           domrepo.NormalizeScope(req.Scope),
		ZeroPolicy:      domrepo.NormalizeZeroPolicy(req.ZeroPolicy),
	})
	if err != nil {
		h.logger.Error("weights usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}

	if req.Persist {
		if err := h.store.StoreBatch(c.Request().Context(), weights); err != nil {
			h.logger.Error("weights persist error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.UpstreamError("could not persist weights").WithError(err))
		}
		if h.pub != nil {
			if err := h.pub.Publish(c.Request().Context(), weights); err != nil {
				// persisted fine; publication failure is reported but not fatal
				h.logger.Warn("weights publish error", xlogger.Error(err))
			}
		}
	}

	if h.cache != nil {
		if b, err := json.Marshal(weights); err == nil {
			_ = h.cache.SetBytes(key, b, h.cacheTTL)
		}
	}

	return xhttp.SuccessResponse(c, weights)
}

func (h *WeightsEchoHandler) Observations(c echo.Context) error {
	req := &models.ObservationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	since, ok := xutil.ParseTime(req.Since)
	if !ok {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code: "ERR_FORMAT", Field: "since", Message: "Since must be RFC3339 or unix seconds",
		}})
	}

	rows, err := h.obs.Since(c.Request().Context(), req.Asset, since, req.Limit)
	if err != nil {
		h.logger.Error("observations query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *WeightsEchoHandler) Healthz(c echo.Context) error {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.health(ctx); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.UpstreamError("warehouse unreachable").WithError(err))
		}
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func splitAssets(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrDataQuality):
		return xhttp.UnprocessableError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrDivisionByZero):
		return xhttp.ConflictError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return xhttp.UpstreamError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError("evaluation failed").WithError(err)
	}
}
