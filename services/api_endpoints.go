package services

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

// ============================================================================
// AUTHENTICATION
// ============================================================================

// Login exchanges credentials for a token pair and stores it in the session.
// It bypasses the auth transport: a 401 here means bad credentials. A non-empty
// TOTPCode is forwarded for accounts protected by a second factor.
func (c *APIClient) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	var pair models.TokenPair
	if err := c.call(ctx, c.plainClient, http.MethodPost, tokenPath, req, &pair); err != nil {
		return models.TokenPair{}, err
	}
	if pair.Access == "" {
		return models.TokenPair{}, fmt.Errorf("login response has no access token")
	}
	return pair, c.session.Login(ctx, pair.Access, pair.Refresh)
}

func (c *APIClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.call(ctx, c.plainClient, http.MethodPost, "/api/register/", req, nil)
}

// VerifyToken asks the backend whether the current access token is still valid.
func (c *APIClient) VerifyToken(ctx context.Context) error {
	token := c.session.AccessToken()
	if token == "" {
		return ErrNotAuthenticated
	}
	return c.call(ctx, c.plainClient, http.MethodPost, verifyPath, map[string]string{"token": token}, nil)
}

// Logout forgets both credentials. The backend keeps no server-side session.
func (c *APIClient) Logout(ctx context.Context) error {
	c.log.Info("Logging out", utils.Token("token", c.session.AccessToken()))
	return c.session.Clear(ctx, SessionLoggedOut)
}

// ============================================================================
// ACCOUNTS & TRANSACTIONS
// ============================================================================

func (c *APIClient) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.do(ctx, http.MethodGet, "/api/accounts/", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *APIClient) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions/", nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// SyncTransactions asks the backend to pull new transactions from the bank.
func (c *APIClient) SyncTransactions(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/sync-transactions/", nil, nil)
}

func (c *APIClient) RefreshAccountBalances(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/refresh-account-balances/", nil, nil)
}

// ============================================================================
// PAYMENTS
// ============================================================================

func (c *APIClient) Payments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, "/api/payments/", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *APIClient) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments/", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *APIClient) UpdatePayment(ctx context.Context, id int64, req models.UpdatePaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/payments/%d/", id), req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ============================================================================
// PROFILE
// ============================================================================

func (c *APIClient) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *APIClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ============================================================================
// LINKING
// ============================================================================

func (c *APIClient) CreateLinkToken(ctx context.Context) (*models.LinkTokenResponse, error) {
	var resp models.LinkTokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/create-link-token/", nil, &resp); err != nil {
		return nil, err
	}
	if resp.LinkToken == "" {
		return nil, fmt.Errorf("backend returned an empty link token")
	}
	return &resp, nil
}

// ExchangePublicToken hands the public token to the backend, which stores the
// long-lived bank credential. Only the item ID comes back.
func (c *APIClient) ExchangePublicToken(ctx context.Context, publicToken string) (*models.ExchangeTokenResponse, error) {
	var resp models.ExchangeTokenResponse
	err := c.do(ctx, http.MethodPost, "/api/exchange-token/", models.ExchangeTokenRequest{PublicToken: publicToken}, &resp)
	if err != nil {
		return nil, err
	}
	c.log.Info("Public token exchanged", zap.String("item_id", utils.MaskID(resp.ItemID)))
	return &resp, nil
}
