package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request with otelgin. Once the handler
// chain has run, the span is tagged with the request id and the tenant.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	base := otelgin.Middleware(serviceName)
	return func(c *gin.Context) {
		c.Set(spanTaggerKey, true)
		base(c)
	}
}

const spanTaggerKey = "tracing_enabled"

// TagSpan adds request attributes to the active span. It must run inside the
// chain started by Tracing, after JWTAuth when tenant attributes are wanted.
func TagSpan() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(spanTaggerKey) {
			span := trace.SpanFromContext(c.Request.Context())
			if span.IsRecording() {
				attrs := []attribute.KeyValue{attribute.String("request_id", GetRequestID(c))}
				if tenantID, ok := GetTenantID(c); ok {
					attrs = append(attrs, attribute.String("tenant_id", tenantID.String()))
				}
				if claims, ok := GetClaims(c); ok && claims.UserID != "" {
					attrs = append(attrs, attribute.String("user_id", claims.UserID))
				}
				span.SetAttributes(attrs...)
			}
		}
		c.Next()
	}
}
