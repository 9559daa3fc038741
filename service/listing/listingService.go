package listingsvc

import (
	"context"
	"database/sql"
	"errors"

	"bookmarket/model"
	"bookmarket/util/tx"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
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

// CreateListing carries the book fields and sale terms of a new
// listing. The seller id comes from the authenticated caller, never
// the payload.
type CreateListing struct {
	Title           string
	Author          string
	Description     *string
	Category        string
	Price           float64
	Condition       *model.BookCondition
	TransactionType model.TransactionType
	PaymentMethod   *model.PaymentMethod
}

type Repo interface {
	ListAvailable(ctx context.Context) ([]model.ListingDetail, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.ListingDetail, error)
	Detail(ctx context.Context, id int64) (*model.ListingDetail, error)
	InsertBook(ctx context.Context, tx *sql.Tx, b *model.Book) (int64, error)
	InsertListing(ctx context.Context, tx *sql.Tx, l *model.Listing) (int64, error)
}

type Service interface {
	Create(ctx context.Context, sellerID int64, req CreateListing) (int64, error)
	ListAvailable(ctx context.Context) ([]model.ListingDetail, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.ListingDetail, error)
	Detail(ctx context.Context, id int64) (*model.ListingDetail, error)
}

type service struct {
	txr tx.Runner
	r   Repo
}

func New(txr tx.Runner, r Repo) Service { return &service{txr: txr, r: r} }

// Create inserts the book and its listing in one transaction; a crash
// between the two writes must not leave an orphaned book row.
func (s *service) Create(ctx context.Context, sellerID int64, req CreateListing) (int64, error) {
	if req.Title == "" || req.Author == "" || req.Category == "" || req.Price < 0 {
		return 0, makeErr(ErrBadInput)
	}

	var listingID int64
	err := s.txr.Run(ctx, func(ctx context.Context, t *sql.Tx) error {
		bookID, err := s.r.InsertBook(ctx, t, &model.Book{
			Title:       req.Title,
			Author:      req.Author,
			Description: req.Description,
			Category:    req.Category,
		})
		if err != nil {
			return err
		}
		listingID, err = s.r.InsertListing(ctx, t, &model.Listing{
			BookID:          bookID,
			SellerID:        sellerID,
			Price:           req.Price,
			Condition:       req.Condition,
			TransactionType: req.TransactionType,
			PaymentMethod:   req.PaymentMethod,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return listingID, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]model.ListingDetail, error) {
	return s.r.ListAvailable(ctx)
}

func (s *service) ListBySeller(ctx context.Context, sellerID int64) ([]model.ListingDetail, error) {
	return s.r.ListBySeller(ctx, sellerID)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.ListingDetail, error) {
	d, err := s.r.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, makeErr(ErrNotFound)
	}
	return d, nil
}
