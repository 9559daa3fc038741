// repository/sale/saleRepository.go
package salerepo

import (
	"context"
	"database/sql"

	"bookmarket/model"
)

// Repo is the append-only completed sale log. Rows are only ever
// inserted; the buyer/seller listings are the audit trail views.
type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, s *model.Sale) (int64, error)

	ListPurchases(ctx context.Context, buyerID int64) ([]model.SaleRow, error)
	ListSold(ctx context.Context, sellerID int64) ([]model.SaleRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, s *model.Sale) (int64, error) {
	const q = `
		INSERT INTO sales (book_id, seller_id, buyer_id, price, condition, transaction_type, payment_method, sold_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q,
		s.BookID, s.SellerID, s.BuyerID, s.Price, s.Condition, s.TransactionType, s.PaymentMethod,
	).Scan(&id)
	return id, err
}

const saleRowQuery = `
	SELECT s.book_id, b.title, b.author, b.description, b.category,
	       s.price, s.condition, s.transaction_type, s.payment_method,
	       s.buyer_id, ub.username, s.seller_id, us.username, s.sold_at
	FROM sales s
	JOIN books b ON b.id = s.book_id
	JOIN users ub ON ub.id = s.buyer_id
	JOIN users us ON us.id = s.seller_id`

func (r *repo) ListPurchases(ctx context.Context, buyerID int64) ([]model.SaleRow, error) {
	return r.list(ctx, saleRowQuery+`
	WHERE s.buyer_id = $1
	ORDER BY s.sold_at DESC, s.id DESC`, buyerID)
}

func (r *repo) ListSold(ctx context.Context, sellerID int64) ([]model.SaleRow, error) {
	return r.list(ctx, saleRowQuery+`
	WHERE s.seller_id = $1
	ORDER BY s.sold_at DESC, s.id DESC`, sellerID)
}

func (r *repo) list(ctx context.Context, q string, arg int64) ([]model.SaleRow, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SaleRow
	for rows.Next() {
		var s model.SaleRow
		if err := rows.Scan(
			&s.BookID, &s.Title, &s.Author, &s.Description, &s.Category,
			&s.Price, &s.Condition, &s.TransactionType, &s.PaymentMethod,
			&s.BuyerID, &s.BuyerUsername, &s.SellerID, &s.SellerUsername, &s.SoldAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
