package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fieldpro/internal/data/entity"

	"go.uber.org/zap"
)

type CreditAPI interface {
	Balance(ctx context.Context) (float64, error)
	Stats(ctx context.Context) (*entity.CreditStats, error)
	Transactions(ctx context.Context) ([]entity.CreditTransaction, error)
	CreateIntent(ctx context.Context, amount float64) (string, error)
	ConfirmPurchase(ctx context.Context, paymentIntentID string, amount float64) error
}

type creditAPI struct {
	client *Client
	log    *zap.Logger
}

func NewCreditAPI(client *Client, log *zap.Logger) CreditAPI {
	return &creditAPI{
		client: client,
		log:    log.With(zap.String("gateway", "credit")),
	}
}

func (a *creditAPI) Balance(ctx context.Context) (float64, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/credits/balance", nil)
	if err != nil {
		return 0, fmt.Errorf("get credit balance: %w", err)
	}

	var payload struct {
		Balance flexAmount `json:"balance"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("decode balance payload: %w", err)
	}
	return float64(payload.Balance), nil
}

func (a *creditAPI) Stats(ctx context.Context) (*entity.CreditStats, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/credits/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("get credit stats: %w", err)
	}
	return NormalizeStats(raw)
}

func (a *creditAPI) Transactions(ctx context.Context) ([]entity.CreditTransaction, error) {
	raw, err := a.client.do(ctx, http.MethodGet, "/credits/transactions", nil)
	if err != nil {
		return nil, fmt.Errorf("get credit transactions: %w", err)
	}
	return NormalizeTransactions(raw)
}

func (a *creditAPI) CreateIntent(ctx context.Context, amount float64) (string, error) {
	body := struct {
		Amount float64 `json:"amount"`
	}{Amount: amount}

	raw, err := a.client.do(ctx, http.MethodPost, "/credits/create-purchase-intent", body)
	if err != nil {
		return "", fmt.Errorf("create purchase intent: %w", err)
	}

	var payload struct {
		PaymentIntentID string `json:"paymentIntentId"`
		IntentID        string `json:"intentId"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode purchase intent payload: %w", err)
	}

	intentID := payload.PaymentIntentID
	if intentID == "" {
		intentID = payload.IntentID
	}
	if intentID == "" {
		return "", fmt.Errorf("purchase intent payload missing paymentIntentId")
	}

	a.log.Info("Purchase intent created",
		zap.String("payment_intent_id", intentID),
		zap.Float64("amount", amount),
	)

	return intentID, nil
}

func (a *creditAPI) ConfirmPurchase(ctx context.Context, paymentIntentID string, amount float64) error {
	body := struct {
		PaymentIntentID string  `json:"paymentIntentId"`
		Amount          float64 `json:"amount"`
	}{PaymentIntentID: paymentIntentID, Amount: amount}

	_, err := a.client.do(ctx, http.MethodPost, "/credits/confirm-purchase", body)
	if err != nil {
		return fmt.Errorf("confirm purchase %s: %w", paymentIntentID, err)
	}
	return nil
}
