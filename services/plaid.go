package services

import (
	"context"
	"fmt"

	"github.com/plaid/plaid-go/v20/plaid"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/config"
)

// PlaidSandboxLinker stands in for the Link widget during development: it asks
// Plaid's sandbox for a public token of a test institution directly.
type PlaidSandboxLinker struct {
	Client        *plaid.APIClient
	InstitutionID string
	log           *zap.Logger
}

func NewPlaidSandboxLinker(cfg config.PlaidConfig, log *zap.Logger) *PlaidSandboxLinker {
	var env plaid.Environment
	switch cfg.Env {
	case "production":
		env = plaid.Production
	case "development":
		env = plaid.Development
	default:
		env = plaid.Sandbox
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	configuration.UseEnvironment(env)

	if log == nil {
		log = zap.NewNop()
	}
	return &PlaidSandboxLinker{
		Client:        plaid.NewAPIClient(configuration),
		InstitutionID: cfg.SandboxInstitution,
		log:           log,
	}
}

// Open ignores the link token: the sandbox endpoint mints a public token for
// the configured institution with the transactions product.
func (l *PlaidSandboxLinker) Open(ctx context.Context, linkToken string) (string, error) {
	request := plaid.NewSandboxPublicTokenCreateRequest(
		l.InstitutionID,
		[]plaid.Products{plaid.PRODUCTS_TRANSACTIONS},
	)

	resp, _, err := l.Client.PlaidApi.SandboxPublicTokenCreate(ctx).SandboxPublicTokenCreateRequest(*request).Execute()
	if err != nil {
		err = formatPlaidError(err)
		l.log.Error("Plaid sandbox public token failed", zap.Error(err))
		return "", err
	}

	l.log.Info("Plaid sandbox public token created", zap.String("institution", l.InstitutionID))
	return resp.GetPublicToken(), nil
}

func formatPlaidError(err error) error {
	if plaidErr, ok := err.(plaid.GenericOpenAPIError); ok {
		return fmt.Errorf("plaid error: %s", string(plaidErr.Body()))
	}
	return err
}
