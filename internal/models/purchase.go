package models

import "time"

// ArticlePurchase maps to the article_purchases table. UNIQUE (user_id, article_id).
type ArticlePurchase struct {
	PurchaseID  string    `json:"purchaseID"`
	UserID      string    `json:"userID"`
	ArticleID   string    `json:"articleID"`
	AmountCents int64     `json:"amountCents"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
