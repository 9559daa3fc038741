// repository/listing/listingRepository.go
package listingrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookmarket/model"
)

// Locked is what the lifecycle service sees after taking the row lock.
type Locked struct {
	ID          int64
	SellerID    int64
	IsAvailable bool
}

type Repo interface {
	// Plain reads (no transaction).
	ListAvailable(ctx context.Context) ([]model.ListingDetail, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.ListingDetail, error)
	Detail(ctx context.Context, id int64) (*model.ListingDetail, error)

	// Listing creation: book + listing in one transaction.
	InsertBook(ctx context.Context, tx *sql.Tx, b *model.Book) (int64, error)
	InsertListing(ctx context.Context, tx *sql.Tx, l *model.Listing) (int64, error)

	// Lifecycle primitives, all under the caller's transaction.
	LockForUpdate(ctx context.Context, tx *sql.Tx, listingID int64) (*Locked, error)
	LockSellersUnavailable(ctx context.Context, tx *sql.Tx, listingID, sellerID int64) (*Locked, error)
	MarkUnavailable(ctx context.Context, tx *sql.Tx, listingID int64) (bool, error)
	Reopen(ctx context.Context, tx *sql.Tx, listingID int64) error
	SnapshotTerms(ctx context.Context, tx *sql.Tx, listingID int64) (*model.TradingBook, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const detailCols = `
	l.id, l.book_id, l.seller_id, l.price, l.condition, l.transaction_type, l.payment_method, l.is_available,
	b.title, b.author, b.description, b.category, u.username`

func (r *repo) ListAvailable(ctx context.Context) ([]model.ListingDetail, error) {
	const q = `
		SELECT ` + detailCols + `
		FROM listings l
		JOIN books b ON b.id = l.book_id
		JOIN users u ON u.id = l.seller_id
		WHERE l.is_available
		ORDER BY l.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

func (r *repo) ListBySeller(ctx context.Context, sellerID int64) ([]model.ListingDetail, error) {
	const q = `
		SELECT ` + detailCols + `
		FROM listings l
		JOIN books b ON b.id = l.book_id
		JOIN users u ON u.id = l.seller_id
		WHERE l.seller_id = $1 AND l.is_available
		ORDER BY l.id DESC`
	rows, err := r.db.QueryContext(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.ListingDetail, error) {
	const q = `
		SELECT ` + detailCols + `
		FROM listings l
		JOIN books b ON b.id = l.book_id
		JOIN users u ON u.id = l.seller_id
		WHERE l.id = $1`
	d := model.ListingDetail{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.BookID, &d.SellerID, &d.Price, &d.Condition, &d.TransactionType, &d.PaymentMethod, &d.IsAvailable,
		&d.Title, &d.Author, &d.Description, &d.Category, &d.SellerUsername,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func scanDetails(rows *sql.Rows) ([]model.ListingDetail, error) {
	var out []model.ListingDetail
	for rows.Next() {
		var d model.ListingDetail
		if err := rows.Scan(
			&d.ID, &d.BookID, &d.SellerID, &d.Price, &d.Condition, &d.TransactionType, &d.PaymentMethod, &d.IsAvailable,
			&d.Title, &d.Author, &d.Description, &d.Category, &d.SellerUsername,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repo) InsertBook(ctx context.Context, tx *sql.Tx, b *model.Book) (int64, error) {
	const q = `
		INSERT INTO books (title, author, description, category)
		VALUES ($1,$2,$3,$4)
		RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q, b.Title, b.Author, b.Description, b.Category).Scan(&id)
	return id, err
}

func (r *repo) InsertListing(ctx context.Context, tx *sql.Tx, l *model.Listing) (int64, error) {
	const q = `
		INSERT INTO listings (book_id, seller_id, price, condition, transaction_type, payment_method, is_available)
		VALUES ($1,$2,$3,$4,$5,$6,TRUE)
		RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q,
		l.BookID, l.SellerID, l.Price, l.Condition, l.TransactionType, l.PaymentMethod,
	).Scan(&id)
	return id, err
}

// LockForUpdate takes the row lock regardless of availability so the
// check-and-set below cannot race another request on the same listing.
func (r *repo) LockForUpdate(ctx context.Context, tx *sql.Tx, listingID int64) (*Locked, error) {
	const q = `
		SELECT id, seller_id, is_available
		FROM listings
		WHERE id = $1
		FOR UPDATE`
	return scanLocked(tx.QueryRowContext(ctx, q, listingID))
}

// LockSellersUnavailable finds the seller's listing that is mid
// lifecycle (unavailable), matching how approvals and rejections look
// the listing up.
func (r *repo) LockSellersUnavailable(ctx context.Context, tx *sql.Tx, listingID, sellerID int64) (*Locked, error) {
	const q = `
		SELECT id, seller_id, is_available
		FROM listings
		WHERE id = $1 AND seller_id = $2 AND NOT is_available
		FOR UPDATE`
	return scanLocked(tx.QueryRowContext(ctx, q, listingID, sellerID))
}

func scanLocked(row *sql.Row) (*Locked, error) {
	l := Locked{}
	err := row.Scan(&l.ID, &l.SellerID, &l.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// MarkUnavailable is the availability compare-and-set: it only fires
// while the flag is still true and reports whether it did.
func (r *repo) MarkUnavailable(ctx context.Context, tx *sql.Tx, listingID int64) (bool, error) {
	const q = `
		UPDATE listings
		SET is_available = FALSE
		WHERE id = $1 AND is_available`
	res, err := tx.ExecContext(ctx, q, listingID)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

func (r *repo) Reopen(ctx context.Context, tx *sql.Tx, listingID int64) error {
	const q = `
		UPDATE listings
		SET is_available = TRUE
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, listingID)
	return err
}

// SnapshotTerms copies the listing's book and sale terms as they stand
// right now; the staging record is built from this, never from a live
// reference.
func (r *repo) SnapshotTerms(ctx context.Context, tx *sql.Tx, listingID int64) (*model.TradingBook, error) {
	const q = `
		SELECT l.id, l.book_id, b.title, b.author, b.description, b.category,
		       l.price, l.condition, l.transaction_type, l.payment_method, l.seller_id
		FROM listings l
		JOIN books b ON b.id = l.book_id
		WHERE l.id = $1`
	t := model.TradingBook{}
	err := tx.QueryRowContext(ctx, q, listingID).Scan(
		&t.ListingID, &t.BookID, &t.Title, &t.Author, &t.Description, &t.Category,
		&t.Price, &t.Condition, &t.TransactionType, &t.PaymentMethod, &t.SellerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
