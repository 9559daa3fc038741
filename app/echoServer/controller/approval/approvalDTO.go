package approval

type PurchaseRequestReq struct {
	ListingID int64 `json:"listing_id" validate:"required,gt=0"`
}
