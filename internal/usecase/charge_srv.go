package usecase

import (
	"context"
	"fmt"
	"strings"

	"fieldpro/internal/data/entity"
	"fieldpro/internal/data/gateway"
	"fieldpro/internal/dto/request"
	"fieldpro/internal/dto/response"
	"fieldpro/internal/store"
	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

const maxChargeLines = 5

type ChargeService interface {
	AddCharges(ctx context.Context, bookingID string, req *request.AddChargesRequest) (*response.ChargeSheetResponse, error)
	RemoveCharge(ctx context.Context, bookingID, chargeID string) (*response.ChargeSheetResponse, error)
	GetCharges(ctx context.Context, bookingID string) (*response.ChargeSheetResponse, error)
	RefreshCharges(ctx context.Context, bookingID string) error
}

type chargeService struct {
	gw    *gateway.Gateway
	store store.Store
	log   *zap.Logger
}

func NewChargeService(gw *gateway.Gateway, st store.Store, log *zap.Logger) ChargeService {
	return &chargeService{
		gw:    gw,
		store: st,
		log:   log.With(zap.String("service", "charge")),
	}
}

// AddCharges submits up to five charge lines in one bulk request. Lines with
// an empty description or a non-positive amount are dropped; a batch with no
// usable line fails validation before any network call.
func (s *chargeService) AddCharges(ctx context.Context, bookingID string, req *request.AddChargesRequest) (*response.ChargeSheetResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add charges validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if len(req.Items) > maxChargeLines {
		return nil, fmt.Errorf("validation failed: at most %d charges per submission", maxChargeLines)
	}

	booking, ok := s.store.Booking(bookingID)
	if !ok {
		fetched, err := s.gw.Booking.Get(ctx, bookingID)
		if err != nil {
			return nil, fmt.Errorf("booking %s not found: %w", bookingID, err)
		}
		s.store.SetBooking(fetched)
		booking = fetched
	}
	if booking.Status != entity.BookingStatusInProgress {
		return nil, fmt.Errorf("cannot add charges while booking is %s", booking.Status)
	}

	items := make([]gateway.ChargeItem, 0, len(req.Items))
	for _, item := range req.Items {
		description := strings.TrimSpace(item.Description)
		if description == "" || item.Amount <= 0 {
			continue
		}
		category := entity.ChargeCategory(item.Category)
		if !category.Valid() {
			category = entity.ChargeCategoryOther
		}
		items = append(items, gateway.ChargeItem{
			Description: description,
			Amount:      item.Amount,
			Category:    category,
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("validation failed: no valid charge lines in batch")
	}

	sheet, err := s.gw.Charge.AddBulk(ctx, bookingID, items, utils.GenerateIdempotencyKey())
	if err != nil {
		s.log.Error("Failed to add charges",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.Int("count", len(items)),
		)
		return nil, err
	}

	s.applySheet(sheet)

	s.log.Info("Charges added",
		zap.String("booking_id", bookingID),
		zap.Int("submitted", len(items)),
		zap.Int("pending", len(sheet.Pending)),
	)

	return response.ChargeSheetToResponse(sheet), nil
}

// RemoveCharge deletes a charge that is still pending. Used both for a
// professional-initiated cancellation and for cleanup after a customer
// rejection notification.
func (s *chargeService) RemoveCharge(ctx context.Context, bookingID, chargeID string) (*response.ChargeSheetResponse, error) {
	sheet, err := s.loadSheet(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	charge, found := sheet.Find(chargeID)
	if !found {
		return nil, fmt.Errorf("charge %s not found", chargeID)
	}
	if charge.Approval != entity.ChargeApprovalPending {
		return nil, fmt.Errorf("cannot remove a charge that is %s", charge.Approval)
	}

	if err := s.gw.Charge.Remove(ctx, bookingID, chargeID); err != nil {
		return nil, err
	}

	if err := s.RefreshCharges(ctx, bookingID); err != nil {
		return nil, err
	}

	refreshed, _ := s.store.Charges(bookingID)

	s.log.Info("Charge removed",
		zap.String("booking_id", bookingID),
		zap.String("charge_id", chargeID),
	)

	return response.ChargeSheetToResponse(refreshed), nil
}

func (s *chargeService) GetCharges(ctx context.Context, bookingID string) (*response.ChargeSheetResponse, error) {
	if err := s.RefreshCharges(ctx, bookingID); err != nil {
		return nil, err
	}
	sheet, _ := s.store.Charges(bookingID)
	return response.ChargeSheetToResponse(sheet), nil
}

// RefreshCharges re-fetches the charge snapshot and recomputes the booking's
// totals. Idempotent; driven by charge_approved / charge_rejected events.
// Approval itself is always the customer's decision, observed here.
func (s *chargeService) RefreshCharges(ctx context.Context, bookingID string) error {
	sheet, err := s.gw.Charge.List(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to refresh charges",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return err
	}

	s.applySheet(sheet)
	return nil
}

// applySheet stores the sheet and keeps finalTotal = total + approved charges
// on the owning booking.
func (s *chargeService) applySheet(sheet *entity.ChargeSheet) {
	s.store.SetCharges(sheet)

	booking, ok := s.store.Booking(sheet.BookingID)
	if !ok {
		return
	}
	booking.AdditionalChargesTotal = sheet.Total
	booking.FinalTotal = booking.Total + sheet.Total
	s.store.SetBooking(booking)
}

func (s *chargeService) loadSheet(ctx context.Context, bookingID string) (*entity.ChargeSheet, error) {
	if sheet, ok := s.store.Charges(bookingID); ok {
		return sheet, nil
	}
	sheet, err := s.gw.Charge.List(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.applySheet(sheet)
	return sheet, nil
}
