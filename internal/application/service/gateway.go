package service

import (
	"context"

	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/pkg/b2brouter"
)

// InvoiceGateway is the slice of the invoicing API the bridge consumes.
// *b2brouter.Client satisfies it; tests substitute fakes.
type InvoiceGateway interface {
	CreateInvoice(ctx context.Context, accountID string, invoice *b2brouter.Invoice) (*b2brouter.InvoiceRecord, error)
	SendInvoice(ctx context.Context, invoiceID int64) error
	ListAccounts(ctx context.Context, limit int) ([]b2brouter.Account, error)
}

// GatewayFactory builds a gateway for the given API key and environment. The
// API key lives in mutable settings, so a fresh gateway is constructed per
// use instead of injecting a single client at startup. A nil factory means
// the invoicing client is unavailable.
type GatewayFactory func(apiKey string, env enum.Environment) InvoiceGateway

// BaseURLFor returns the API entrypoint for an environment.
func BaseURLFor(env enum.Environment) string {
	if env == enum.EnvironmentProduction {
		return b2brouter.ProductionBaseURL
	}
	return b2brouter.StagingBaseURL
}
