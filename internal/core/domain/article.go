package domain

// Article is a paywalled (or free) long-form piece. PriceCents == 0 means free to read.
// TipsCount is a derived aggregate: it must always equal the number of tip ledger entries
// referencing this article, and is only ever mutated by the ledger write path.
type Article struct {
	ArticleID    string `json:"articleID"` // Primary Key (UUID)
	AuthorID     string `json:"authorID"`  // FK -> users.user_id
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	ThumbnailURL string `json:"thumbnailURL"`
	Excerpt      string `json:"excerpt"`
	ContentHTML  string `json:"contentHTML"`
	Category     string `json:"category"`
	ReadMinutes  int    `json:"readMinutes"`
	PriceCents   int64  `json:"priceCents"` // Minor currency units
	TipsCount    int64  `json:"tipsCount"`  // Derived aggregate, see above
	AuditFields
}
