package dto

import (
	"time"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// AuthorResponse is the embedded author summary on article responses.
type AuthorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarURL"`
}

// ArticleResponse defines the data returned for an article. ContentHTML is only
// populated when the requesting account owns the article (or it is free).
type ArticleResponse struct {
	ArticleID    string          `json:"articleID"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	ThumbnailURL string          `json:"thumbnailURL"`
	Excerpt      string          `json:"excerpt"`
	ContentHTML  string          `json:"contentHTML,omitempty"`
	Category     string          `json:"category"`
	ReadMinutes  int             `json:"readMinutes"`
	PriceCents   int64           `json:"priceCents"`
	TipsCount    int64           `json:"tipsCount"`
	IsOwned      bool            `json:"isOwned"`
	Author       *AuthorResponse `json:"author,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListArticlesParams holds filters for the article listing.
type ListArticlesParams struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Price    string `form:"price" binding:"omitempty,oneof=free paid"`
	Sort     string `form:"sort" binding:"omitempty,oneof=recent most_tipped"`
	Limit    int    `form:"limit" binding:"omitempty,gt=0,lte=50"`
}

// ListArticlesResponse is the article listing payload.
type ListArticlesResponse struct {
	Items []ArticleResponse `json:"items"`
}

// CreateArticleRequest is the studio body for publishing an article.
type CreateArticleRequest struct {
	Title        string `json:"title" binding:"required"`
	Slug         string `json:"slug" binding:"required,slug"`
	ThumbnailURL string `json:"thumbnailURL"`
	Excerpt      string `json:"excerpt"`
	ContentHTML  string `json:"contentHTML" binding:"required"`
	Category     string `json:"category" binding:"required"`
	ReadMinutes  int    `json:"readMinutes" binding:"omitempty,gt=0"`
	PriceCents   int64  `json:"priceCents" binding:"gte=0"`
}

// ToArticleResponse converts a domain Article, resolving ownership for the caller.
func ToArticleResponse(a *domain.Article, owned bool, author *AuthorResponse) ArticleResponse {
	resp := ArticleResponse{
		ArticleID:    a.ArticleID,
		Title:        a.Title,
		Slug:         a.Slug,
		ThumbnailURL: a.ThumbnailURL,
		Excerpt:      a.Excerpt,
		Category:     a.Category,
		ReadMinutes:  a.ReadMinutes,
		PriceCents:   a.PriceCents,
		TipsCount:    a.TipsCount,
		IsOwned:      owned,
		Author:       author,
		CreatedAt:    a.CreatedAt,
	}
	if owned {
		resp.ContentHTML = a.ContentHTML
	}
	return resp
}
