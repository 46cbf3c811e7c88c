package usecase

import (
	"context"
	"fmt"

	"fieldpro/internal/data/entity"
	"fieldpro/internal/data/gateway"
	"fieldpro/internal/dto/request"
	"fieldpro/internal/dto/response"
	"fieldpro/internal/store"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

type CreditService interface {
	GetBalance(ctx context.Context) (*response.CreditBalanceResponse, error)
	GetStats(ctx context.Context) (*response.CreditStatsResponse, error)
	GetTransactions(ctx context.Context) ([]response.CreditTransactionResponse, error)
	CreatePurchaseIntent(ctx context.Context, req *request.PurchaseIntentRequest) (*response.PurchaseIntentResponse, error)
	ConfirmPurchase(ctx context.Context, req *request.ConfirmPurchaseRequest) error
}

type creditService struct {
	gw    *gateway.Gateway
	store store.Store
	log   *zap.Logger
}

func NewCreditService(gw *gateway.Gateway, st store.Store, log *zap.Logger) CreditService {
	return &creditService{
		gw:    gw,
		store: st,
		log:   log.With(zap.String("service", "credit")),
	}
}

// GetBalance reads through the snapshot cache. The balance is only ever
// mutated by the backend; completion and purchase confirmation invalidate
// the cache so the next read re-fetches.
func (s *creditService) GetBalance(ctx context.Context) (*response.CreditBalanceResponse, error) {
	if balance, ok := s.store.Balance(); ok {
		return &response.CreditBalanceResponse{Balance: balance}, nil
	}

	balance, err := s.gw.Credit.Balance(ctx)
	if err != nil {
		s.log.Error("Failed to get credit balance", zap.Error(err))
		return nil, err
	}

	s.store.SetBalance(balance)
	return &response.CreditBalanceResponse{Balance: balance}, nil
}

func (s *creditService) GetStats(ctx context.Context) (*response.CreditStatsResponse, error) {
	stats, err := s.gw.Credit.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to get credit stats", zap.Error(err))
		return nil, err
	}

	s.store.SetBalance(stats.Balance)

	if stats.NeedsRecharge {
		s.log.Warn("Credit balance below recharge threshold",
			zap.Float64("balance", stats.Balance),
			zap.Float64("minimum", stats.MinimumBalance),
		)
	}

	return response.StatsToResponse(stats), nil
}

func (s *creditService) GetTransactions(ctx context.Context) ([]response.CreditTransactionResponse, error) {
	txs, err := s.gw.Credit.Transactions(ctx)
	if err != nil {
		s.log.Error("Failed to get credit transactions", zap.Error(err))
		return nil, err
	}

	if !entity.ReconcileTransactions(txs) {
		// the displayed balance no longer matches the replayed stream;
		// log loudly but still show what the backend sent
		s.log.Error("Credit transaction stream does not reconcile",
			zap.Int("count", len(txs)),
		)
	}

	responses := make([]response.CreditTransactionResponse, len(txs))
	for i := range txs {
		responses[i] = response.TransactionToResponse(&txs[i])
	}
	return responses, nil
}

func (s *creditService) CreatePurchaseIntent(ctx context.Context, req *request.PurchaseIntentRequest) (*response.PurchaseIntentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	intentID, err := s.gw.Credit.CreateIntent(ctx, req.Amount)
	if err != nil {
		s.log.Error("Failed to create purchase intent",
			zap.Error(err),
			zap.Float64("amount", req.Amount),
		)
		return nil, err
	}

	return &response.PurchaseIntentResponse{
		PaymentIntentID: intentID,
		Amount:          req.Amount,
	}, nil
}

// ConfirmPurchase is the second half of the two-phase purchase. By the time
// this is called the external payment has already succeeded, so a failure
// here leaves the professional paid but not credited. That state is surfaced
// as unreconciled and routed to support; a blind retry could double-credit
// the ledger.
func (s *creditService) ConfirmPurchase(ctx context.Context, req *request.ConfirmPurchaseRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.gw.Credit.ConfirmPurchase(ctx, req.PaymentIntentID, req.Amount); err != nil {
		s.log.Error("Purchase confirmation failed after external payment",
			zap.Error(err),
			zap.String("payment_intent_id", req.PaymentIntentID),
			zap.Float64("amount", req.Amount),
		)
		return fmt.Errorf("purchase unreconciled: payment may have succeeded but crediting failed, contact support (intent %s): %w",
			req.PaymentIntentID, err)
	}

	s.store.InvalidateBalance()

	s.log.Info("Credit purchase confirmed",
		zap.String("payment_intent_id", req.PaymentIntentID),
		zap.Float64("amount", req.Amount),
	)

	return nil
}
