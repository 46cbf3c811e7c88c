package request

type PurchaseIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ConfirmPurchaseRequest struct {
	PaymentIntentID string  `json:"payment_intent_id" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
}
