package middleware

import "context"

type contextKey string

const subjectContextKey contextKey = "subject"

// WithSubject injects the verified token subject id into the context.
func WithSubject(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subjectID)
}

// SubjectFromContext returns the verified subject id, or "".
func SubjectFromContext(ctx context.Context) string {
	v := ctx.Value(subjectContextKey)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
