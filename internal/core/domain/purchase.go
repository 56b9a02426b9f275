package domain

import "time"

// ArticlePurchase is the ownership record created as a side effect of a purchase ledger
// entry. At most one exists per (user, article) pair; the unique constraint doubles as the
// idempotency guard for retried purchases.
type ArticlePurchase struct {
	PurchaseID  string    `json:"purchaseID"` // Primary Key (UUID)
	UserID      string    `json:"userID"`     // FK -> users.user_id
	ArticleID   string    `json:"articleID"`  // FK -> articles.article_id
	AmountCents int64     `json:"amountCents"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
