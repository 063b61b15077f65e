package featureflags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderName identifies this provider to the code selecting the active provider.
const ProviderName = "Go Provider"

// Provider evaluates flags against a FlagStore. Evaluations never fail: when
// the store cannot answer, the caller's default is returned.
//
// Only boolean evaluations consult the store. String, integer, float and object
// evaluations always return the default with ReasonStatic.
//
// A Provider holds no mutable state and is safe for concurrent use.
type Provider struct {
	store   FlagStore
	log     *slog.Logger
	metrics *evaluationMetrics
}

type ProviderOption func(p *Provider)

// WithProviderLogger sets the logger receiving one diagnostic record per evaluation.
func WithProviderLogger(log *slog.Logger) ProviderOption {
	return func(p *Provider) {
		p.log = log
	}
}

// WithMetrics counts evaluations by flag and reason on reg.
func WithMetrics(reg prometheus.Registerer) ProviderOption {
	return func(p *Provider) {
		p.metrics = newEvaluationMetrics(reg)
	}
}

// NewProvider creates a Provider reading live flag state from store.
func NewProvider(store FlagStore, opts ...ProviderOption) *Provider {
	p := &Provider{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(slog.String("provider", ProviderName))
	return p
}

func (p *Provider) Metadata() Metadata {
	return Metadata{Name: ProviderName}
}

// BooleanEvaluation returns the live enabled state of key, or def if the store
// lookup fails.
func (p *Provider) BooleanEvaluation(ctx context.Context, key string, def bool, ec EvaluationContext) EvaluationResult[bool] {
	return evaluate(ctx, p, key, def, ec, func(rec FlagRecord) bool {
		return rec.Enabled
	})
}

func (p *Provider) StringEvaluation(ctx context.Context, key string, def string, ec EvaluationContext) EvaluationResult[string] {
	return evaluate[string](ctx, p, key, def, ec, nil)
}

func (p *Provider) IntegerEvaluation(ctx context.Context, key string, def int64, ec EvaluationContext) EvaluationResult[int64] {
	return evaluate[int64](ctx, p, key, def, ec, nil)
}

func (p *Provider) FloatEvaluation(ctx context.Context, key string, def float64, ec EvaluationContext) EvaluationResult[float64] {
	return evaluate[float64](ctx, p, key, def, ec, nil)
}

func (p *Provider) ObjectEvaluation(ctx context.Context, key string, def interface{}, ec EvaluationContext) EvaluationResult[interface{}] {
	return evaluate[interface{}](ctx, p, key, def, ec, nil)
}

// evaluate is shared by every typed entry point. A nil resolve means the type
// is not backed by the store.
func evaluate[T any](ctx context.Context, p *Provider, key string, def T, ec EvaluationContext, resolve func(FlagRecord) T) EvaluationResult[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	if resolve == nil {
		res := EvaluationResult[T]{Value: def, Reason: ReasonStatic}
		p.record(ctx, key, def, res.Value, ec, res.Reason, nil)
		return res
	}

	rec, err := p.fetch(ctx, key)
	if err != nil {
		res := EvaluationResult[T]{Value: def, Reason: ReasonError, ErrorCode: KindOf(err)}
		p.record(ctx, key, def, res.Value, ec, res.Reason, err)
		return res
	}

	res := EvaluationResult[T]{Value: resolve(rec), Reason: ReasonResolved}
	p.record(ctx, key, def, res.Value, ec, res.Reason, nil)
	return res
}

// fetch performs exactly one store lookup. A panicking store is reported as
// unavailable.
func (p *Provider) fetch(ctx context.Context, key string) (rec FlagRecord, err error) {
	if p == nil || p.store == nil {
		return FlagRecord{}, unavailableError(key, errors.New("no flag store configured"))
	}
	defer func() {
		if r := recover(); r != nil {
			rec = FlagRecord{}
			err = unavailableError(key, fmt.Errorf("flag store panicked: %v", r))
		}
	}()
	return p.store.GetFlag(ctx, key)
}

func (p *Provider) record(ctx context.Context, key string, def, value interface{}, ec EvaluationContext, reason Reason, err error) {
	log := slog.Default()
	if p != nil && p.log != nil {
		log = p.log
	}

	attrs := []slog.Attr{
		slog.String("flag", key),
		slog.String("outcome", string(reason)),
		slog.Any("default", def),
	}
	if tk := ec.TargetingKey(); tk != "" {
		attrs = append(attrs, slog.String("targeting_key", tk))
	}

	switch reason {
	case ReasonResolved:
		attrs = append(attrs, slog.Any("value", value))
		log.LogAttrs(ctx, slog.LevelInfo, "flag fetched", attrs...)
	case ReasonError:
		attrs = append(attrs, slog.Any("error", err))
		log.LogAttrs(ctx, slog.LevelError, "error fetching flag, returning default value", attrs...)
	default:
		log.LogAttrs(ctx, slog.LevelDebug, "flag type is not backed by the store, returning default value", attrs...)
	}

	if p != nil {
		p.metrics.observe(key, reason)
	}
}
