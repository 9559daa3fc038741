// repository/trading/tradingRepository.go
package tradingrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookmarket/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, t *model.TradingBook) (int64, error)
	LockByListingAndBuyer(ctx context.Context, tx *sql.Tx, listingID, buyerID int64) (*model.TradingBook, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)

	ListForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, t *model.TradingBook) (int64, error) {
	const q = `
		INSERT INTO trading_books
			(listing_id, book_id, title, author, description, category,
			 price, condition, transaction_type, payment_method, buyer_id, seller_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q,
		t.ListingID, t.BookID, t.Title, t.Author, t.Description, t.Category,
		t.Price, t.Condition, t.TransactionType, t.PaymentMethod, t.BuyerID, t.SellerID,
	).Scan(&id)
	return id, err
}

func (r *repo) LockByListingAndBuyer(ctx context.Context, tx *sql.Tx, listingID, buyerID int64) (*model.TradingBook, error) {
	const q = `
		SELECT id, listing_id, book_id, title, author, description, category,
		       price, condition, transaction_type, payment_method, buyer_id, seller_id
		FROM trading_books
		WHERE listing_id = $1 AND buyer_id = $2
		FOR UPDATE`
	t := model.TradingBook{}
	err := tx.QueryRowContext(ctx, q, listingID, buyerID).Scan(
		&t.ID, &t.ListingID, &t.BookID, &t.Title, &t.Author, &t.Description, &t.Category,
		&t.Price, &t.Condition, &t.TransactionType, &t.PaymentMethod, &t.BuyerID, &t.SellerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM trading_books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

// ListForBuyer returns the approved trades this buyer has not confirmed
// yet.
func (r *repo) ListForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error) {
	const q = `
		SELECT t.listing_id, t.book_id, t.title, t.author, t.description, t.category,
		       t.price, t.condition, t.transaction_type, t.payment_method,
		       t.buyer_id, ub.username, t.seller_id, us.username
		FROM trading_books t
		JOIN users ub ON ub.id = t.buyer_id
		JOIN users us ON us.id = t.seller_id
		WHERE t.buyer_id = $1
		ORDER BY t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TradeRow
	for rows.Next() {
		var t model.TradeRow
		if err := rows.Scan(
			&t.ListingID, &t.BookID, &t.Title, &t.Author, &t.Description, &t.Category,
			&t.Price, &t.Condition, &t.TransactionType, &t.PaymentMethod,
			&t.BuyerID, &t.BuyerUsername, &t.SellerID, &t.SellerUsername,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
