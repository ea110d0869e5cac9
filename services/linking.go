package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

type LinkStage string

const (
	StageTokenRequested LinkStage = "token_requested"
	StageLinkOpened     LinkStage = "link_opened"
	StageExchanged      LinkStage = "exchanged"
	StageRefetched      LinkStage = "refetched"
)

// LinkError reports which step of the linking sequence failed.
type LinkError struct {
	Stage LinkStage
	Err   error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("account linking failed at %s: %v", e.Stage, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// Linker turns a link token into a public token. In the browser this is the
// Plaid Link widget; in development it can be the sandbox.
type Linker interface {
	Open(ctx context.Context, linkToken string) (publicToken string, err error)
}

// LinkBackend is the subset of the API client the linking flow needs.
type LinkBackend interface {
	CreateLinkToken(ctx context.Context) (*models.LinkTokenResponse, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*models.ExchangeTokenResponse, error)
	Accounts(ctx context.Context) ([]models.Account, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
}

type LinkService struct {
	api    LinkBackend
	events *EventLog
	log    *zap.Logger
}

func NewLinkService(api LinkBackend, events *EventLog, log *zap.Logger) *LinkService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LinkService{api: api, events: events, log: log}
}

// Token performs the first step only, for linkers that run outside this
// process.
func (s *LinkService) Token(ctx context.Context) (*models.LinkTokenResponse, error) {
	resp, err := s.api.CreateLinkToken(ctx)
	if err != nil {
		return nil, s.fail(StageTokenRequested, err)
	}
	return resp, nil
}

// Link runs the whole sequence with the given linker: token, open, exchange,
// refetch. Nothing is retried.
func (s *LinkService) Link(ctx context.Context, linker Linker) (*models.LinkResult, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	publicToken, err := linker.Open(ctx, token.LinkToken)
	if err != nil {
		return nil, s.fail(StageLinkOpened, err)
	}
	if publicToken == "" {
		return nil, s.fail(StageLinkOpened, fmt.Errorf("linker returned no public token"))
	}

	return s.Complete(ctx, publicToken)
}

// Complete exchanges a public token and reloads the data that the new link
// changes.
func (s *LinkService) Complete(ctx context.Context, publicToken string) (*models.LinkResult, error) {
	exchanged, err := s.api.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, s.fail(StageExchanged, err)
	}
	utils.LogBankingAction(s.log, "Account linked", exchanged.ItemID)

	result := &models.LinkResult{ItemID: exchanged.ItemID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.api.Accounts(gctx)
		result.Accounts = accounts
		return err
	})
	g.Go(func() error {
		txns, err := s.api.Transactions(gctx)
		result.Transactions = txns
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(StageRefetched, err)
	}

	if s.events != nil {
		s.events.Record("accounts_linked", "Bank account linked",
			fmt.Sprintf("%d accounts available", len(result.Accounts)))
	}
	return result, nil
}

func (s *LinkService) fail(stage LinkStage, err error) error {
	s.log.Error("Account linking failed", zap.String("stage", string(stage)), zap.Error(err))
	return &LinkError{Stage: stage, Err: err}
}
