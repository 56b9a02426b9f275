package mapping

import (
	"github.com/tipnest/tipnest_backend/internal/core/domain"
	"github.com/tipnest/tipnest_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its model, flattening the item ref.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:     d.EntryID,
		UserID:      d.UserID,
		Kind:        string(d.Kind),
		AmountCents: d.AmountCents,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.Item != nil {
		kind := string(d.Item.Kind)
		id := d.Item.ID
		m.ItemKind = &kind
		m.ItemID = &id
	}
	return m
}

// ToDomainLedgerEntry converts a model LedgerEntry to its domain form, rebuilding the
// tagged item ref when both columns are present.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		Kind:        domain.EntryKind(m.Kind),
		AmountCents: m.AmountCents,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.ItemKind != nil && m.ItemID != nil {
		d.Item = &domain.ItemRef{Kind: domain.ItemKind(*m.ItemKind), ID: *m.ItemID}
	}
	return d
}

// ToDomainLedgerEntrySlice converts a slice of model entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToModelPurchase converts a domain ArticlePurchase to its model.
func ToModelPurchase(d domain.ArticlePurchase) models.ArticlePurchase {
	return models.ArticlePurchase{
		PurchaseID:  d.PurchaseID,
		UserID:      d.UserID,
		ArticleID:   d.ArticleID,
		AmountCents: d.AmountCents,
		PurchasedAt: d.PurchasedAt,
	}
}

// ToDomainPurchase converts a model ArticlePurchase to its domain form.
func ToDomainPurchase(m models.ArticlePurchase) domain.ArticlePurchase {
	return domain.ArticlePurchase{
		PurchaseID:  m.PurchaseID,
		UserID:      m.UserID,
		ArticleID:   m.ArticleID,
		AmountCents: m.AmountCents,
		PurchasedAt: m.PurchasedAt,
	}
}

// ToModelSubscription converts a domain Subscription to its model.
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID:   d.SubscriptionID,
		UserID:           d.UserID,
		TargetKind:       string(d.TargetKind),
		CommunityID:      d.CommunityID,
		TierID:           d.TierID,
		Status:           string(d.Status),
		TrialEndsAt:      d.TrialEndsAt,
		CurrentPeriodEnd: d.CurrentPeriodEnd,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to its domain form.
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:   m.SubscriptionID,
		UserID:           m.UserID,
		TargetKind:       domain.ItemKind(m.TargetKind),
		CommunityID:      m.CommunityID,
		TierID:           m.TierID,
		Status:           domain.SubscriptionStatus(m.Status),
		TrialEndsAt:      m.TrialEndsAt,
		CurrentPeriodEnd: m.CurrentPeriodEnd,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
