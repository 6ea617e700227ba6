package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"EvalPull/internal/domain/models"
	domrepo "EvalPull/internal/domain/repository"
	applogger "EvalPull/pkg/logger"
)

// EvaluationParams are the inputs of one evaluation run.
type EvaluationParams struct {
	Assets          []string
	LookbackDays    int
	EvaluationRange int // max observations per asset window
	Scope           domrepo.Scope
	ZeroPolicy      domrepo.ZeroPolicy
}

// EvaluationPipeline turns a windowed stream of price observations into
// normalized ensemble weights: observations -> labels -> joined evaluations
// -> per-model accuracy -> weights. Every run recomputes from scratch over
// immutable snapshots; nothing is persisted here.
type EvaluationPipeline struct {
	obs     domrepo.ObservationStore
	preds   domrepo.PredictionStore
	metrics domrepo.Metrics
	l       *applogger.Logger
	timeout time.Duration
}

func NewEvaluationPipeline(obs domrepo.ObservationStore, preds domrepo.PredictionStore, metrics domrepo.Metrics) *EvaluationPipeline {
	return &EvaluationPipeline{obs: obs, preds: preds, metrics: metrics, timeout: 30 * time.Second}
}

// SetLogger injects a structured logger.
func (p *EvaluationPipeline) SetLogger(l *applogger.Logger) { p.l = l }

type assetEvaluation struct {
	asset       string
	evaluations []models.EvaluatedPrediction
	loadedPairs []modelAssetPair
	err         error
}

type modelAssetPair struct{ model, asset string }

// EvaluateAndWeight runs the full pipeline for every requested asset and
// returns the normalized weight rows. Assets are evaluated concurrently as
// independent runs sharing only the read-only stores.
func (p *EvaluationPipeline) EvaluateAndWeight(ctx context.Context, params EvaluationParams) ([]models.ModelWeight, error) {
	start := time.Now()
	if len(params.Assets) == 0 {
		return nil, fmt.Errorf("at least one asset required")
	}
	if params.LookbackDays <= 0 {
		params.LookbackDays = 1
	}
	if params.EvaluationRange <= 0 {
		params.EvaluationRange = 15
	}
	if !domrepo.IsValidScope(params.Scope) {
		params.Scope = domrepo.DefaultScope()
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ch := make(chan assetEvaluation, len(params.Assets))
	var wg sync.WaitGroup
	for _, asset := range params.Assets {
		wg.Add(1)
		go func(asset string) {
			defer wg.Done()
			ch <- p.evaluateAsset(ctx, asset, params)
		}(asset)
	}
	go func() { wg.Wait(); close(ch) }()

	var evaluations []models.EvaluatedPrediction
	var loaded []modelAssetPair
	for res := range ch {
		if res.err != nil {
			if p.metrics != nil {
				p.metrics.RecordError("evaluate_asset")
			}
			return nil, res.err
		}
		evaluations = append(evaluations, res.evaluations...)
		loaded = append(loaded, res.loadedPairs...)
	}

	accuracies, err := AggregateAccuracy(evaluations)
	if err != nil {
		return nil, err
	}
	if err := p.applyZeroPolicy(loaded, accuracies, params.ZeroPolicy); err != nil {
		return nil, err
	}
	weights, err := NormalizeWeights(accuracies, params.Scope)
	if err != nil {
		return nil, err
	}

	if p.metrics != nil {
		for _, w := range weights {
			p.metrics.RecordModelWeight(w.ModelType, w.Asset, w.Weight)
		}
		p.metrics.RecordLatency("evaluate_and_weight", time.Since(start).Seconds())
	}
	if p.l != nil {
		p.l.Info("evaluation run complete",
			applogger.Strings("assets", params.Assets),
			applogger.Int("lookback_days", params.LookbackDays),
			applogger.Int("evaluated_rows", len(evaluations)),
			applogger.Int("weights", len(weights)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return weights, nil
}

func (p *EvaluationPipeline) evaluateAsset(ctx context.Context, asset string, params EvaluationParams) assetEvaluation {
	res := assetEvaluation{asset: asset}

	window, err := p.obs.LatestWindow(ctx, asset, params.LookbackDays, params.EvaluationRange)
	if err != nil {
		res.err = fmt.Errorf("fetch window asset=%s lookback=%dd limit=%d: %w",
			asset, params.LookbackDays, params.EvaluationRange, err)
		return res
	}
	if len(window) == 0 {
		ok, err := p.obs.Exists(ctx, asset)
		if err != nil {
			res.err = fmt.Errorf("probe asset=%s: %w", asset, err)
			return res
		}
		if !ok {
			res.err = fmt.Errorf("asset %s: %w", asset, models.ErrNotFound)
			return res
		}
		// known asset with nothing in the window contributes no rows
		return res
	}

	labels := LabelWindow(window)
	predictions, err := p.preds.ForWindow(ctx, asset, params.LookbackDays, LabelIDs(labels))
	if err != nil {
		res.err = fmt.Errorf("load predictions asset=%s lookback=%dd: %w", asset, params.LookbackDays, err)
		return res
	}

	evaluations, err := JoinEvaluations(labels, predictions)
	if err != nil {
		res.err = err
		return res
	}
	res.evaluations = evaluations

	seen := make(map[modelAssetPair]struct{})
	for _, pr := range predictions {
		pair := modelAssetPair{model: pr.ModelType, asset: pr.Asset}
		if _, ok := seen[pair]; !ok {
			seen[pair] = struct{}{}
			res.loadedPairs = append(res.loadedPairs, pair)
		}
	}

	if p.metrics != nil {
		p.metrics.RecordEvaluation(asset, len(evaluations))
	}
	if p.l != nil {
		p.l.Debug("asset evaluated",
			applogger.String("asset", asset),
			applogger.Int("window", len(window)),
			applogger.Int("predictions", len(predictions)),
			applogger.Int("evaluated", len(evaluations)),
		)
	}
	return res
}

// applyZeroPolicy handles (model, asset) pairs whose predictions were loaded
// but all dropped by the join: excluded silently, or surfaced as an error,
// per configuration.
func (p *EvaluationPipeline) applyZeroPolicy(loaded []modelAssetPair, accuracies []models.ModelAccuracy, policy domrepo.ZeroPolicy) error {
	if policy != domrepo.ZeroPolicyError {
		return nil
	}
	evaluated := make(map[modelAssetPair]struct{}, len(accuracies))
	for _, a := range accuracies {
		evaluated[modelAssetPair{model: a.ModelType, asset: a.Asset}] = struct{}{}
	}
	for _, pair := range loaded {
		if _, ok := evaluated[pair]; !ok {
			return fmt.Errorf("model %s has no evaluated predictions for %s: %w",
				pair.model, pair.asset, models.ErrDivisionByZero)
		}
	}
	return nil
}
