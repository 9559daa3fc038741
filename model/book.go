// model/book.go
package model

type BookCondition string

const (
	ConditionNew     BookCondition = "NEW"
	ConditionLikeNew BookCondition = "LIKE_NEW"
	ConditionGood    BookCondition = "GOOD"
	ConditionFair    BookCondition = "FAIR"
	ConditionPoor    BookCondition = "POOR"
)

type TransactionType string

const (
	TransactionSale  TransactionType = "SALE"
	TransactionTrade TransactionType = "TRADE"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCard         PaymentMethod = "CARD"
	PaymentPaypal       PaymentMethod = "PAYPAL"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
}

// Listing is a book offered for sale or trade by a seller. Availability
// flips false the moment a purchase request is admitted to the approval
// ledger and true again only on rejection; only the lifecycle service
// mutates it.
type Listing struct {
	ID              int64           `json:"id"`
	BookID          int64           `json:"book_id"`
	SellerID        int64           `json:"seller_id"`
	Price           float64         `json:"price"`
	Condition       *BookCondition  `json:"condition,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	IsAvailable     bool            `json:"is_available"`
}

// ListingDetail joins a listing with its book and seller for read APIs.
type ListingDetail struct {
	Listing
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Description    *string `json:"description,omitempty"`
	Category       string  `json:"category"`
	SellerUsername string  `json:"seller_username"`
}
