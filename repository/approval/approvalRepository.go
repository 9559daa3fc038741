// repository/approval/approvalRepository.go
package approvalrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookmarket/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, listingID, buyerID int64) (int64, error)
	LockByListing(ctx context.Context, tx *sql.Tx, listingID int64) (*model.ApprovalSale, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)

	ListForSeller(ctx context.Context, sellerID int64) ([]model.TradeRow, error)
	ListForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, listingID, buyerID int64) (int64, error) {
	const q = `
		INSERT INTO approval_sales (listing_id, buyer_id, submitted_at)
		VALUES ($1, $2, NOW())
		RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q, listingID, buyerID).Scan(&id)
	return id, err
}

func (r *repo) LockByListing(ctx context.Context, tx *sql.Tx, listingID int64) (*model.ApprovalSale, error) {
	const q = `
		SELECT id, listing_id, buyer_id, submitted_at
		FROM approval_sales
		WHERE listing_id = $1
		FOR UPDATE`
	a := model.ApprovalSale{}
	err := tx.QueryRowContext(ctx, q, listingID).Scan(
		&a.ID, &a.ListingID, &a.BuyerID, &a.SubmittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM approval_sales WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

const tradeRowCols = `
	l.id, l.book_id, b.title, b.author, b.description, b.category,
	l.price, l.condition, l.transaction_type, l.payment_method,
	a.buyer_id, ub.username, l.seller_id, us.username, a.submitted_at`

// ListForSeller returns the purchase requests waiting on this seller's
// decision.
func (r *repo) ListForSeller(ctx context.Context, sellerID int64) ([]model.TradeRow, error) {
	const q = `
		SELECT ` + tradeRowCols + `
		FROM approval_sales a
		JOIN listings l ON l.id = a.listing_id
		JOIN books b ON b.id = l.book_id
		JOIN users ub ON ub.id = a.buyer_id
		JOIN users us ON us.id = l.seller_id
		WHERE l.seller_id = $1
		ORDER BY a.submitted_at DESC`
	return r.queryRows(ctx, q, sellerID)
}

// ListForBuyer returns the requests this buyer submitted and is still
// waiting to have approved.
func (r *repo) ListForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error) {
	const q = `
		SELECT ` + tradeRowCols + `
		FROM approval_sales a
		JOIN listings l ON l.id = a.listing_id
		JOIN books b ON b.id = l.book_id
		JOIN users ub ON ub.id = a.buyer_id
		JOIN users us ON us.id = l.seller_id
		WHERE a.buyer_id = $1
		ORDER BY a.submitted_at DESC`
	return r.queryRows(ctx, q, buyerID)
}

func (r *repo) queryRows(ctx context.Context, q string, arg int64) ([]model.TradeRow, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
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
			&t.BuyerID, &t.BuyerUsername, &t.SellerID, &t.SellerUsername, &t.SubmittedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
