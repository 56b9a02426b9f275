package domain

// PostType distinguishes feed post variants.
type PostType string

const (
	PostVideo   PostType = "VIDEO"
	PostArticle PostType = "ARTICLE"
)

// PostAccess controls who may view a post's full content.
type PostAccess string

const (
	AccessPublic     PostAccess = "PUBLIC"
	AccessSupporters PostAccess = "SUPPORTERS"
)

// Post is a feed item published by a creator. Media is referenced by URL only; upload
// mechanics live elsewhere. TipsCount and TipsTotalCents are derived aggregates owned by
// the ledger write path.
type Post struct {
	PostID          string     `json:"postID"`    // Primary Key (UUID)
	CreatorID       string     `json:"creatorID"` // FK -> creators.creator_id
	Type            PostType   `json:"type"`
	Title           string     `json:"title"`
	CoverURL        string     `json:"coverURL"`
	Tags            []string   `json:"tags"`
	Access          PostAccess `json:"access"`
	MediaURL        string     `json:"mediaURL"`
	CaptionsURL     string     `json:"captionsURL"`
	DurationSeconds int        `json:"durationSeconds"`
	ArticleMarkdown string     `json:"articleMarkdown"`
	ReadingMinutes  int        `json:"readingMinutes"`
	Views           int64      `json:"views"`
	TipsCount       int64      `json:"tipsCount"`      // Derived aggregate
	TipsTotalCents  int64      `json:"tipsTotalCents"` // Derived aggregate
	AuditFields
}
