package models

// Article maps to the articles table.
type Article struct {
	ArticleID    string `json:"articleID"`
	AuthorID     string `json:"authorID"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	ThumbnailURL string `json:"thumbnailURL"`
	Excerpt      string `json:"excerpt"`
	ContentHTML  string `json:"contentHTML"`
	Category     string `json:"category"`
	ReadMinutes  int    `json:"readMinutes"`
	PriceCents   int64  `json:"priceCents"`
	TipsCount    int64  `json:"tipsCount"`
	AuditFields
}
