package auth

import "context"

type viewerKey struct{}

// WithViewer stores the subject of a verified viewer token.
func WithViewer(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, viewerKey{}, sub)
}

// ViewerFromContext returns the token subject, or "" for anonymous requests.
func ViewerFromContext(ctx context.Context) string {
	s, _ := ctx.Value(viewerKey{}).(string)
	return s
}
