// Package lifecycle drives a listing through its sale states:
// listed -> pending approval -> staged for trading -> completed, with
// rejection as the only way back to listed. Every mutation runs in a
// single transaction; the listing row lock plus the availability
// compare-and-set keep two buyers from being admitted to the same
// listing.
package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"bookmarket/model"
	listingrepo "bookmarket/repository/listing"
	"bookmarket/util/tx"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrOwnListing ErrCode = "OWN_LISTING"
	ErrConflict   ErrCode = "CONFLICT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// ----- store contracts -----

type ListingStore interface {
	LockForUpdate(ctx context.Context, tx *sql.Tx, listingID int64) (*listingrepo.Locked, error)
	LockSellersUnavailable(ctx context.Context, tx *sql.Tx, listingID, sellerID int64) (*listingrepo.Locked, error)
	MarkUnavailable(ctx context.Context, tx *sql.Tx, listingID int64) (bool, error)
	Reopen(ctx context.Context, tx *sql.Tx, listingID int64) error
	SnapshotTerms(ctx context.Context, tx *sql.Tx, listingID int64) (*model.TradingBook, error)
}

type ApprovalStore interface {
	Insert(ctx context.Context, tx *sql.Tx, listingID, buyerID int64) (int64, error)
	LockByListing(ctx context.Context, tx *sql.Tx, listingID int64) (*model.ApprovalSale, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ListForSeller(ctx context.Context, sellerID int64) ([]model.TradeRow, error)
	ListForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error)
}

type TradingStore interface {
	Insert(ctx context.Context, tx *sql.Tx, t *model.TradingBook) (int64, error)
	LockByListingAndBuyer(ctx context.Context, tx *sql.Tx, listingID, buyerID int64) (*model.TradingBook, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ListForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error)
}

type SaleStore interface {
	Insert(ctx context.Context, tx *sql.Tx, s *model.Sale) (int64, error)
	ListPurchases(ctx context.Context, buyerID int64) ([]model.SaleRow, error)
	ListSold(ctx context.Context, sellerID int64) ([]model.SaleRow, error)
}

// ----- Service -----

type Service interface {
	// RequestPurchase admits a buyer to the approval ledger and takes
	// the listing off the market, atomically.
	RequestPurchase(ctx context.Context, listingID, buyerID int64) (bool, error)

	// ApproveSale converts the pending request into a staged trade.
	// Returns (false, nil) when no request is pending, so repeated
	// approval attempts stay harmless.
	ApproveSale(ctx context.Context, listingID, sellerID int64) (bool, error)

	// RejectSale removes the pending request and reopens the listing.
	// Returns (false, nil) when no request is pending.
	RejectSale(ctx context.Context, listingID, sellerID int64) (bool, error)

	// ConfirmReceived finalizes a staged trade into the sale log.
	ConfirmReceived(ctx context.Context, listingID, buyerID int64) (bool, error)

	PendingForSeller(ctx context.Context, sellerID int64) ([]model.TradeRow, error)
	PendingForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error)
	StagedForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error)
	PurchasesOf(ctx context.Context, buyerID int64) ([]model.SaleRow, error)
	SoldBy(ctx context.Context, sellerID int64) ([]model.SaleRow, error)
}

type service struct {
	txr       tx.Runner
	listings  ListingStore
	approvals ApprovalStore
	trading   TradingStore
	sales     SaleStore
}

func New(txr tx.Runner, l ListingStore, a ApprovalStore, t TradingStore, s SaleStore) Service {
	return &service{txr: txr, listings: l, approvals: a, trading: t, sales: s}
}

func (s *service) RequestPurchase(ctx context.Context, listingID, buyerID int64) (bool, error) {
	err := s.txr.Run(ctx, func(ctx context.Context, t *sql.Tx) error {
		l, err := s.listings.LockForUpdate(ctx, t, listingID)
		if err != nil {
			return err
		}
		if l == nil || !l.IsAvailable {
			return makeErr(ErrNotFound)
		}
		if l.SellerID == buyerID {
			return makeErr(ErrOwnListing)
		}

		set, err := s.listings.MarkUnavailable(ctx, t, listingID)
		if err != nil {
			return err
		}
		if !set {
			// another request flipped the flag between our lock and the
			// compare-and-set
			return makeErr(ErrConflict)
		}

		if _, err := s.approvals.Insert(ctx, t, listingID, buyerID); err != nil {
			if isUniqueViolation(err) {
				return makeErr(ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) ApproveSale(ctx context.Context, listingID, sellerID int64) (bool, error) {
	approved := false
	err := s.txr.Run(ctx, func(ctx context.Context, t *sql.Tx) error {
		l, err := s.listings.LockSellersUnavailable(ctx, t, listingID, sellerID)
		if err != nil {
			return err
		}
		if l == nil {
			return makeErr(ErrNotFound)
		}

		entry, err := s.approvals.LockByListing(ctx, t, listingID)
		if err != nil {
			return err
		}
		if entry == nil {
			// already approved or rejected; benign no-op
			return nil
		}

		snap, err := s.listings.SnapshotTerms(ctx, t, listingID)
		if err != nil {
			return err
		}
		if snap == nil {
			return makeErr(ErrNotFound)
		}
		snap.BuyerID = entry.BuyerID

		// delete first so a retry can never stage the same entry twice
		deleted, err := s.approvals.Delete(ctx, t, entry.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("approval entry %d vanished under lock", entry.ID)
		}
		if _, err := s.trading.Insert(ctx, t, snap); err != nil {
			return err
		}
		approved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return approved, nil
}

func (s *service) RejectSale(ctx context.Context, listingID, sellerID int64) (bool, error) {
	rejected := false
	err := s.txr.Run(ctx, func(ctx context.Context, t *sql.Tx) error {
		l, err := s.listings.LockSellersUnavailable(ctx, t, listingID, sellerID)
		if err != nil {
			return err
		}
		if l == nil {
			return makeErr(ErrNotFound)
		}

		entry, err := s.approvals.LockByListing(ctx, t, listingID)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}

		if err := s.listings.Reopen(ctx, t, listingID); err != nil {
			return err
		}
		deleted, err := s.approvals.Delete(ctx, t, entry.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("approval entry %d vanished under lock", entry.ID)
		}
		rejected = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return rejected, nil
}

func (s *service) ConfirmReceived(ctx context.Context, listingID, buyerID int64) (bool, error) {
	err := s.txr.Run(ctx, func(ctx context.Context, t *sql.Tx) error {
		staged, err := s.trading.LockByListingAndBuyer(ctx, t, listingID, buyerID)
		if err != nil {
			return err
		}
		if staged == nil {
			return makeErr(ErrNotFound)
		}

		sale := &model.Sale{
			BookID:          staged.BookID,
			SellerID:        staged.SellerID,
			BuyerID:         staged.BuyerID,
			Price:           staged.Price,
			Condition:       staged.Condition,
			TransactionType: staged.TransactionType,
			PaymentMethod:   staged.PaymentMethod,
		}
		if _, err := s.sales.Insert(ctx, t, sale); err != nil {
			return err
		}
		deleted, err := s.trading.Delete(ctx, t, staged.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("staged trade %d vanished under lock", staged.ID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) PendingForSeller(ctx context.Context, sellerID int64) ([]model.TradeRow, error) {
	return s.approvals.ListForSeller(ctx, sellerID)
}

func (s *service) PendingForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error) {
	return s.approvals.ListForBuyer(ctx, buyerID)
}

func (s *service) StagedForBuyer(ctx context.Context, buyerID int64) ([]model.TradeRow, error) {
	return s.trading.ListForBuyer(ctx, buyerID)
}

func (s *service) PurchasesOf(ctx context.Context, buyerID int64) ([]model.SaleRow, error) {
	return s.sales.ListPurchases(ctx, buyerID)
}

func (s *service) SoldBy(ctx context.Context, sellerID int64) ([]model.SaleRow, error) {
	return s.sales.ListSold(ctx, sellerID)
}

// isUniqueViolation reports whether the unique index on live approval
// entries rejected the insert.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
