package response

import (
	"time"

	"fieldpro/internal/data/entity"
)

type BookingResponse struct {
	ID                     string               `json:"id"`
	BookingNumber          string               `json:"booking_number"`
	Status                 entity.BookingStatus `json:"status"`
	PaymentMethod          entity.PaymentMethod `json:"payment_method"`
	ServiceName            string               `json:"service_name,omitempty"`
	CustomerName           string               `json:"customer_name,omitempty"`
	Total                  float64              `json:"total"`
	AdditionalChargesTotal float64              `json:"additional_charges_total"`
	FinalTotal             float64              `json:"final_total"`
	CreditDeducted         float64              `json:"credit_deducted"`
	OnlinePaid             bool                 `json:"online_paid"`
	CreatedAt              time.Time            `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	ChargeCount int                     `json:"charge_count"`
	CanComplete bool                    `json:"can_complete"`
	Charges     *ChargeSheetResponse    `json:"charges,omitempty"`
	Session     *PaymentSessionResponse `json:"payment_session,omitempty"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                     b.ID,
		BookingNumber:          b.BookingNumber,
		Status:                 b.Status,
		PaymentMethod:          b.PaymentMethod,
		ServiceName:            b.ServiceName,
		CustomerName:           b.CustomerName,
		Total:                  b.Total,
		AdditionalChargesTotal: b.AdditionalChargesTotal,
		FinalTotal:             b.FinalTotal,
		CreditDeducted:         b.CreditDeducted,
		OnlinePaid:             b.OnlinePaid,
		CreatedAt:              b.CreatedAt,
	}
}
