package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LovationAdmin/budget-dashboard/config"
	"github.com/LovationAdmin/budget-dashboard/models"
)

// DashboardService builds the page views. Every view is fetched fresh from the
// backend; independent collections are loaded concurrently and derived only
// once all of them arrived.
type DashboardService struct {
	api    *APIClient
	events *EventLog
	cfg    config.DashboardConfig
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

func NewDashboardService(api *APIClient, events *EventLog, cfg config.DashboardConfig, loc *time.Location, log *zap.Logger) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PriorityDays < 0 {
		cfg.PriorityDays = DefaultPriorityDays
	}
	return &DashboardService{api: api, events: events, cfg: cfg, loc: loc, now: time.Now, log: log}
}

func (s *DashboardService) today() time.Time {
	return s.now().In(s.loc)
}

func (s *DashboardService) accountsAndTransactions(ctx context.Context) ([]models.Account, []models.Transaction, error) {
	var (
		accounts []models.Account
		txns     []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.api.Accounts(gctx)
		if err != nil {
			return fmt.Errorf("failed to load accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		txns, err = s.api.Transactions(gctx)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return accounts, txns, nil
}

// ============================================================================
// DASHBOARD & WALLET
// ============================================================================

func (s *DashboardService) Dashboard(ctx context.Context) (*models.DashboardView, error) {
	accounts, txns, err := s.accountsAndTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DashboardView{
		Summary:  Summarize(accounts, txns, s.cfg.TopCategories, s.cfg.RecentTransactions),
		Accounts: nonNil(accounts),
	}, nil
}

// Wallet lists accounts with their own totals and the filtered transactions.
// The summary reflects the filtered set.
func (s *DashboardService) Wallet(ctx context.Context, filter models.TransactionFilter) (*models.WalletView, error) {
	accounts, txns, err := s.accountsAndTransactions(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterTransactions(SortTransactions(txns), filter)
	scope := accounts
	if filter.AccountID != 0 {
		scope = nil
		for _, a := range accounts {
			if a.ID == filter.AccountID {
				scope = append(scope, a)
			}
		}
	}

	categories := Categories(txns)
	if categories == nil {
		categories = []string{}
	}
	return &models.WalletView{
		Accounts:     SummarizeAccounts(nonNil(accounts), txns),
		Transactions: filtered,
		Categories:   categories,
		Summary:      Summarize(scope, filtered, s.cfg.TopCategories, s.cfg.RecentTransactions),
	}, nil
}

func (s *DashboardService) Sync(ctx context.Context) error {
	if err := s.api.SyncTransactions(ctx); err != nil {
		return fmt.Errorf("failed to sync transactions: %w", err)
	}
	s.record("transactions_synced", "Transactions synced", "Latest transactions pulled from your banks")
	return nil
}

func (s *DashboardService) RefreshBalances(ctx context.Context) error {
	if err := s.api.RefreshAccountBalances(ctx); err != nil {
		return fmt.Errorf("failed to refresh balances: %w", err)
	}
	s.record("balances_refreshed", "Balances refreshed", "Account balances updated")
	return nil
}

// ============================================================================
// PAYMENTS
// ============================================================================

func (s *DashboardService) Payments(ctx context.Context) (*models.PaymentsView, error) {
	payments, err := s.api.Payments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return s.paymentsView(payments), nil
}

func (s *DashboardService) paymentsView(payments []models.Payment) *models.PaymentsView {
	today := s.today()
	upcoming, history := PartitionPayments(payments, today, s.cfg.PriorityDays)
	return &models.PaymentsView{
		Today:    today.Format(models.DateLayout),
		Upcoming: upcoming,
		History:  history,
		Overview: SummarizePayments(payments, today),
	}
}

func (s *DashboardService) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	if req.Status == "" {
		req.Status = models.PaymentPending
	}
	if err := ValidatePayment(req); err != nil {
		return nil, err
	}

	payment, err := s.api.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}
	s.record("payment_created", "Payment scheduled", fmt.Sprintf("%s due %s", payment.Recipient, payment.DueDate.Day()))
	return payment, nil
}

// UpdatePayment patches a payment and returns the refreshed payments view.
// Marking a payment paid without a date uses today. The new status is applied
// to the refetched list in case the backend read lags the write.
func (s *DashboardService) UpdatePayment(ctx context.Context, id int64, req models.UpdatePaymentRequest) (*models.PaymentsView, error) {
	if req.Status != nil {
		if !req.Status.Valid() {
			verr := &ValidationError{}
			verr.add("status", `"`+string(*req.Status)+`" is not a valid choice.`)
			return nil, verr
		}
		if *req.Status == models.PaymentPaid && req.PaidDate == nil {
			today := s.today().Format(models.DateLayout)
			req.PaidDate = &today
		}
	}

	if _, err := s.api.UpdatePayment(ctx, id, req); err != nil {
		return nil, err
	}

	payments, err := s.api.Payments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	if req.Status != nil {
		for i := range payments {
			if payments[i].ID != id {
				continue
			}
			payments[i].Status = *req.Status
			if req.PaidDate != nil {
				if d, err := models.ParseDate(*req.PaidDate); err == nil {
					payments[i].PaidDate = &d
				}
			}
		}
		s.record("payment_"+string(*req.Status), "Payment updated", fmt.Sprintf("Payment #%d marked %s", id, *req.Status))
	}
	return s.paymentsView(payments), nil
}

// ============================================================================
// ACTIVITY
// ============================================================================

func (s *DashboardService) Activity(ctx context.Context, filter models.ActivityFilter) (*models.ActivityView, error) {
	var (
		txns     []models.Transaction
		payments []models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.api.Transactions(gctx)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = s.api.Payments(gctx)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []models.SystemEvent
	if s.events != nil {
		events = s.events.List()
	}

	items := FilterActivity(BuildTimeline(txns, payments, events), filter)
	return &models.ActivityView{
		Total: len(items),
		Days:  GroupByDay(items),
	}, nil
}

// ============================================================================
// SETTINGS
// ============================================================================

func (s *DashboardService) Profile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.api.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *DashboardService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	s.record("profile_updated", "Settings saved", "Profile and preferences updated")
	return profile, nil
}

func (s *DashboardService) record(kind, title, description string) {
	if s.events != nil {
		s.events.Record(kind, title, description)
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
