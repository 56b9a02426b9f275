package models

// Post maps to the posts table. Tags is stored as a text[] column.
type Post struct {
	PostID          string   `json:"postID"`
	CreatorID       string   `json:"creatorID"`
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	CoverURL        string   `json:"coverURL"`
	Tags            []string `json:"tags"`
	Access          string   `json:"access"`
	MediaURL        string   `json:"mediaURL"`
	CaptionsURL     string   `json:"captionsURL"`
	DurationSeconds int      `json:"durationSeconds"`
	ArticleMarkdown string   `json:"articleMarkdown"`
	ReadingMinutes  int      `json:"readingMinutes"`
	Views           int64    `json:"views"`
	TipsCount       int64    `json:"tipsCount"`
	TipsTotalCents  int64    `json:"tipsTotalCents"`
	AuditFields
}
