package listing

type CreateListingReq struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Author          string  `json:"author" validate:"required,min=1,max=50"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category        string  `json:"category" validate:"required,max=50"`
	Price           float64 `json:"price" validate:"gte=0,lte=9999.99"`
	Condition       *string `json:"condition,omitempty" validate:"omitempty,oneof=NEW LIKE_NEW GOOD FAIR POOR"`
	TransactionType string  `json:"transaction_type" validate:"required,oneof=SALE TRADE"`
	PaymentMethod   *string `json:"payment_method,omitempty" validate:"omitempty,oneof=CASH CARD PAYPAL BANK_TRANSFER"`
}
