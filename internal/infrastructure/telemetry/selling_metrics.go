package telemetry

import (
	"context"
	"fmt"

	"github.com/erp/selling/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AttrDocType labels selling metrics with the document type
var AttrDocType = attribute.Key("doctype")

// SellingMetrics counts selling document submissions and credit-limit blocks
type SellingMetrics struct {
	submitted    metric.Int64Counter
	creditBlocks metric.Int64Counter
}

// NewSellingMetrics registers the selling counters on meter
func NewSellingMetrics(meter metric.Meter) (*SellingMetrics, error) {
	submitted, err := meter.Int64Counter("selling.documents.submitted",
		metric.WithDescription("Selling documents submitted"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, fmt.Errorf("register submitted counter: %w", err)
	}
	creditBlocks, err := meter.Int64Counter("selling.credit_limit.blocked",
		metric.WithDescription("Submissions rejected by the credit limit check"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, fmt.Errorf("register credit block counter: %w", err)
	}
	return &SellingMetrics{submitted: submitted, creditBlocks: creditBlocks}, nil
}

// RecordSubmit counts one submitted document
func (m *SellingMetrics) RecordSubmit(ctx context.Context, docType trade.DocType) {
	m.submitted.Add(ctx, 1, metric.WithAttributes(AttrDocType.String(string(docType))))
}

// RecordCreditBlock counts one submission blocked by the credit limit
func (m *SellingMetrics) RecordCreditBlock(ctx context.Context, docType trade.DocType) {
	m.creditBlocks.Add(ctx, 1, metric.WithAttributes(AttrDocType.String(string(docType))))
}
