// model/lifecycle.go
package model

import "time"

// ApprovalSale is one outstanding purchase request awaiting the seller's
// decision. A listing has at most one live entry at a time.
type ApprovalSale struct {
	ID          int64     `json:"id"`
	ListingID   int64     `json:"listing_id"`
	BuyerID     int64     `json:"buyer_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// TradingBook is an approved sale awaiting the buyer's receipt
// confirmation. Book and sale terms are copied at approval time, not
// referenced, so later listing edits cannot change what was agreed.
type TradingBook struct {
	ID              int64           `json:"id"`
	ListingID       int64           `json:"listing_id"`
	BookID          int64           `json:"book_id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     *string         `json:"description,omitempty"`
	Category        string          `json:"category"`
	Price           float64         `json:"price"`
	Condition       *BookCondition  `json:"condition,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	BuyerID         int64           `json:"buyer_id"`
	SellerID        int64           `json:"seller_id"`
}

// Sale is the final, immutable record of a finished transaction.
type Sale struct {
	ID              int64           `json:"id"`
	BookID          int64           `json:"book_id"`
	SellerID        int64           `json:"seller_id"`
	BuyerID         int64           `json:"buyer_id"`
	Price           float64         `json:"price"`
	Condition       *BookCondition  `json:"condition,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	SoldAt          time.Time       `json:"sold_at"`
}

// SaleRow is a completed sale joined with its book and counterparties.
type SaleRow struct {
	BookID          int64           `json:"book_id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     *string         `json:"description,omitempty"`
	Category        string          `json:"category"`
	Price           float64         `json:"price"`
	Condition       *BookCondition  `json:"condition,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	BuyerID         int64           `json:"buyer_id"`
	BuyerUsername   string          `json:"buyer_username"`
	SellerID        int64           `json:"seller_id"`
	SellerUsername  string          `json:"seller_username"`
	SoldAt          time.Time       `json:"sold_at"`
}

// TradeRow is the flat record returned by the lifecycle query
// endpoints: book info, agreed terms and both counterparties.
type TradeRow struct {
	ListingID       int64           `json:"listing_id"`
	BookID          int64           `json:"book_id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     *string         `json:"description,omitempty"`
	Category        string          `json:"category"`
	Price           float64         `json:"price"`
	Condition       *BookCondition  `json:"condition,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	BuyerID         int64           `json:"buyer_id"`
	BuyerUsername   string          `json:"buyer_username"`
	SellerID        int64           `json:"seller_id"`
	SellerUsername  string          `json:"seller_username"`
	SubmittedAt     *time.Time      `json:"submitted_at,omitempty"`
}
