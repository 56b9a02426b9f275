package dto

import (
	"time"

	"github.com/tipnest/tipnest_backend/internal/core/domain"
)

// PostMetricsResponse carries the derived aggregates for a post.
type PostMetricsResponse struct {
	Views          int64 `json:"views"`
	TipsCount      int64 `json:"tipsCount"`
	TipsTotalCents int64 `json:"tipsTotalCents"`
}

// PostResponse defines the data returned for a feed post.
type PostResponse struct {
	PostID          string              `json:"postID"`
	CreatorID       string              `json:"creatorID"`
	Type            string              `json:"type"`
	Title           string              `json:"title"`
	CoverURL        string              `json:"coverURL"`
	Tags            []string            `json:"tags"`
	Access          string              `json:"access"`
	MediaURL        string              `json:"mediaURL,omitempty"`
	CaptionsURL     string              `json:"captionsURL,omitempty"`
	DurationSeconds int                 `json:"durationSeconds,omitempty"`
	ArticleMarkdown string              `json:"articleMarkdown,omitempty"`
	ReadingMinutes  int                 `json:"readingMinutes,omitempty"`
	Metrics         PostMetricsResponse `json:"metrics"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ListFeedParams holds filters for the post feed.
type ListFeedParams struct {
	Tab   string `form:"tab" binding:"omitempty,oneof=trending latest"`
	Type  string `form:"type" binding:"omitempty,oneof=all video article"`
	Limit int    `form:"limit" binding:"omitempty,gt=0,lte=50"`
}

// ListFeedResponse is the feed payload.
type ListFeedResponse struct {
	Items []PostResponse `json:"items"`
}

// CreatePostRequest is the studio body for publishing a post.
type CreatePostRequest struct {
	Type            string   `json:"type" binding:"required,oneof=VIDEO ARTICLE"`
	Title           string   `json:"title" binding:"required"`
	CoverURL        string   `json:"coverURL"`
	Tags            []string `json:"tags"`
	Access          string   `json:"access" binding:"required,oneof=PUBLIC SUPPORTERS"`
	MediaURL        string   `json:"mediaURL"`
	CaptionsURL     string   `json:"captionsURL"`
	DurationSeconds int      `json:"durationSeconds" binding:"omitempty,gt=0"`
	ArticleMarkdown string   `json:"articleMarkdown"`
	ReadingMinutes  int      `json:"readingMinutes" binding:"omitempty,gt=0"`
}

// ToPostResponse converts a domain Post to its response DTO.
func ToPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		PostID:          p.PostID,
		CreatorID:       p.CreatorID,
		Type:            string(p.Type),
		Title:           p.Title,
		CoverURL:        p.CoverURL,
		Tags:            p.Tags,
		Access:          string(p.Access),
		MediaURL:        p.MediaURL,
		CaptionsURL:     p.CaptionsURL,
		DurationSeconds: p.DurationSeconds,
		ArticleMarkdown: p.ArticleMarkdown,
		ReadingMinutes:  p.ReadingMinutes,
		Metrics: PostMetricsResponse{
			Views:          p.Views,
			TipsCount:      p.TipsCount,
			TipsTotalCents: p.TipsTotalCents,
		},
		CreatedAt: p.CreatedAt,
	}
}

// ToPostResponses converts a slice of domain posts.
func ToPostResponses(posts []domain.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = ToPostResponse(&p)
	}
	return responses
}
