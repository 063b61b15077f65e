package featureflags

import (
	"context"
)

type providerKeyType uint8

var providerKey = providerKeyType(1)

// NewContext returns a copy of ctx carrying p as the active provider.
func NewContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey, p)
}

// FromContext returns the active provider carried by ctx.
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey).(*Provider)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// IsEnabled evaluates a boolean flag with the provider carried by ctx. Without
// a provider the default is returned.
func IsEnabled(ctx context.Context, key string, def bool) bool {
	p, ok := FromContext(ctx)
	if !ok {
		return def
	}
	return p.BooleanEvaluation(ctx, key, def, EvaluationContext{}).Value
}
