package listingsvc

import (
	"context"
	"database/sql"
	"testing"

	"bookmarket/model"
	"bookmarket/util/tx"
)

type passRunner struct{}

func (passRunner) Run(ctx context.Context, fn tx.Fn) error { return fn(ctx, nil) }

type fakeRepo struct {
	books    []model.Book
	listings []model.Listing
	details  map[int64]*model.ListingDetail
}

func (f *fakeRepo) ListAvailable(ctx context.Context) ([]model.ListingDetail, error) {
	return nil, nil
}

func (f *fakeRepo) ListBySeller(ctx context.Context, sellerID int64) ([]model.ListingDetail, error) {
	return nil, nil
}

func (f *fakeRepo) Detail(ctx context.Context, id int64) (*model.ListingDetail, error) {
	return f.details[id], nil
}

func (f *fakeRepo) InsertBook(ctx context.Context, _ *sql.Tx, b *model.Book) (int64, error) {
	f.books = append(f.books, *b)
	return int64(len(f.books)), nil
}

func (f *fakeRepo) InsertListing(ctx context.Context, _ *sql.Tx, l *model.Listing) (int64, error) {
	f.listings = append(f.listings, *l)
	return int64(len(f.listings)), nil
}

func TestCreate(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(passRunner{}, repo)

	id, err := svc.Create(context.Background(), 1, CreateListing{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Category:        "FICTION",
		Price:           12.50,
		TransactionType: model.TransactionSale,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 1 {
		t.Fatalf("listing id = %d, want 1", id)
	}
	if len(repo.books) != 1 || repo.books[0].Title != "Dune" {
		t.Fatalf("book not inserted: %+v", repo.books)
	}
	l := repo.listings[0]
	if l.SellerID != 1 || l.BookID != 1 || l.Price != 12.50 {
		t.Fatalf("listing fields wrong: %+v", l)
	}
}

func TestCreate_BadInput(t *testing.T) {
	svc := New(passRunner{}, &fakeRepo{})

	cases := []CreateListing{
		{Author: "a", Category: "c", Price: 1},           // no title
		{Title: "t", Category: "c", Price: 1},            // no author
		{Title: "t", Author: "a", Price: 1},              // no category
		{Title: "t", Author: "a", Category: "c", Price: -1},
	}
	for i, req := range cases {
		if _, err := svc.Create(context.Background(), 1, req); Code(err) != ErrBadInput {
			t.Fatalf("case %d: expected BAD_INPUT, got %v", i, err)
		}
	}
}

func TestDetail_NotFound(t *testing.T) {
	svc := New(passRunner{}, &fakeRepo{details: map[int64]*model.ListingDetail{}})

	_, err := svc.Detail(context.Background(), 99)
	if Code(err) != ErrNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDetail(t *testing.T) {
	repo := &fakeRepo{details: map[int64]*model.ListingDetail{
		5: {Listing: model.Listing{ID: 5, SellerID: 1, Price: 12.50, IsAvailable: true}, Title: "Dune"},
	}}
	svc := New(passRunner{}, repo)

	d, err := svc.Detail(context.Background(), 5)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Title != "Dune" || d.ID != 5 {
		t.Fatalf("unexpected detail: %+v", d)
	}
}
