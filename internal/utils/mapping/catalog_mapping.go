package mapping

import (
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	"github.com/tipnest/tipnest_backend/internal/models"
)

// ToDomainArticle converts a model Article to its domain form.
func ToDomainArticle(m models.Article) domain.Article {
	return domain.Article{
		ArticleID:    m.ArticleID,
		AuthorID:     m.AuthorID,
		Title:        m.Title,
		Slug:         m.Slug,
		ThumbnailURL: m.ThumbnailURL,
		Excerpt:      m.Excerpt,
		ContentHTML:  m.ContentHTML,
		Category:     m.Category,
		ReadMinutes:  m.ReadMinutes,
		PriceCents:   m.PriceCents,
		TipsCount:    m.TipsCount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelArticle converts a domain Article to its model.
func ToModelArticle(d domain.Article) models.Article {
	return models.Article{
		ArticleID:    d.ArticleID,
		AuthorID:     d.AuthorID,
		Title:        d.Title,
		Slug:         d.Slug,
		ThumbnailURL: d.ThumbnailURL,
		Excerpt:      d.Excerpt,
		ContentHTML:  d.ContentHTML,
		Category:     d.Category,
		ReadMinutes:  d.ReadMinutes,
		PriceCents:   d.PriceCents,
		TipsCount:    d.TipsCount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainArticleSlice converts a slice of model articles.
func ToDomainArticleSlice(ms []models.Article) []domain.Article {
	ds := make([]domain.Article, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainArticle(m)
	}
	return ds
}

// ToDomainCommunity converts a model Community to its domain form.
func ToDomainCommunity(m models.Community) domain.Community {
	return domain.Community{
		CommunityID:       m.CommunityID,
		OwnerID:           m.OwnerID,
		Name:              m.Name,
		Slug:              m.Slug,
		CoverURL:          m.CoverURL,
		Description:       m.Description,
		MonthlyPriceCents: m.MonthlyPriceCents,
		MembersCount:      m.MembersCount,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCommunitySlice converts a slice of model communities.
func ToDomainCommunitySlice(ms []models.Community) []domain.Community {
	ds := make([]domain.Community, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCommunity(m)
	}
	return ds
}

// ToDomainPost converts a model Post to its domain form.
func ToDomainPost(m models.Post) domain.Post {
	return domain.Post{
		PostID:          m.PostID,
		CreatorID:       m.CreatorID,
		Type:            domain.PostType(m.Type),
		Title:           m.Title,
		CoverURL:        m.CoverURL,
		Tags:            m.Tags,
		Access:          domain.PostAccess(m.Access),
		MediaURL:        m.MediaURL,
		CaptionsURL:     m.CaptionsURL,
		DurationSeconds: m.DurationSeconds,
		ArticleMarkdown: m.ArticleMarkdown,
		ReadingMinutes:  m.ReadingMinutes,
		Views:           m.Views,
		TipsCount:       m.TipsCount,
		TipsTotalCents:  m.TipsTotalCents,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPost converts a domain Post to its model.
func ToModelPost(d domain.Post) models.Post {
	return models.Post{
		PostID:          d.PostID,
		CreatorID:       d.CreatorID,
		Type:            string(d.Type),
		Title:           d.Title,
		CoverURL:        d.CoverURL,
		Tags:            d.Tags,
		Access:          string(d.Access),
		MediaURL:        d.MediaURL,
		CaptionsURL:     d.CaptionsURL,
		DurationSeconds: d.DurationSeconds,
		ArticleMarkdown: d.ArticleMarkdown,
		ReadingMinutes:  d.ReadingMinutes,
		Views:           d.Views,
		TipsCount:       d.TipsCount,
		TipsTotalCents:  d.TipsTotalCents,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPostSlice converts a slice of model posts.
func ToDomainPostSlice(ms []models.Post) []domain.Post {
	ds := make([]domain.Post, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPost(m)
	}
	return ds
}

// ToDomainCreator converts a model Creator to its domain form (tiers loaded separately).
func ToDomainCreator(m models.Creator) domain.Creator {
	return domain.Creator{
		CreatorID:         m.CreatorID,
		UserID:            m.UserID,
		Handle:            m.Handle,
		Name:              m.Name,
		AvatarURL:         m.AvatarURL,
		BannerURL:         m.BannerURL,
		Bio:               m.Bio,
		FollowersCount:    m.FollowersCount,
		MonthlySupporters: m.MonthlySupporters,
		TipsTotalCents:    m.TipsTotalCents,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTier converts a model Tier to its domain form.
func ToDomainTier(m models.Tier) domain.Tier {
	return domain.Tier{
		TierID:      m.TierID,
		CreatorID:   m.CreatorID,
		Name:        m.Name,
		PriceCents:  m.PriceCents,
		Perks:       m.Perks,
		Position:    m.Position,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTierSlice converts a slice of model tiers.
func ToDomainTierSlice(ms []models.Tier) []domain.Tier {
	ds := make([]domain.Tier, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTier(m)
	}
	return ds
}
