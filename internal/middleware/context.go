package middleware

import (
	"context"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxBearerToken   ctxKey = "bearer_token"
	ctxIdentity      ctxKey = "identity"
)

func GetCorrelationID(ctx context.Context) string {
	if v := ctx.Value(ctxCorrelationID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithCorrelationID is used by background work that has no inbound request.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, ctxCorrelationID, cid)
}

func GetBearerToken(ctx context.Context) string {
	if v := ctx.Value(ctxBearerToken); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxBearerToken, token)
}

func GetIdentity(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(model.Identity)
	return id, ok
}

func withIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}
