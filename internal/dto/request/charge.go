package request

type ChargeItemRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty" validate:"omitempty,oneof=materials extra_work transport other"`
}

type AddChargesRequest struct {
	Items []ChargeItemRequest `json:"items" validate:"required,min=1,max=5"`
}
