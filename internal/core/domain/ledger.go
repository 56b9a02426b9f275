package domain

// EntryKind classifies a ledger entry by the monetary action that produced it.
type EntryKind string

const (
	KindPurchase     EntryKind = "PURCHASE"
	KindTip          EntryKind = "TIP"
	KindSubscription EntryKind = "SUBSCRIPTION"
)

// ItemKind tags the monetizable item variants a ledger entry may reference.
type ItemKind string

const (
	ItemArticle   ItemKind = "ARTICLE"
	ItemPost      ItemKind = "POST"
	ItemCommunity ItemKind = "COMMUNITY"
	ItemTier      ItemKind = "TIER"
)

// ItemRef is a tagged reference to a monetizable item. The variants differ in which
// aggregate counters a ledger write must touch, so code switches on Kind rather than
// duck-typing a shared shape.
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   string   `json:"id"`
}

// LedgerEntry is the immutable record of one monetary action. Entries are created exactly
// once per successful user action and never updated or deleted; aggregate counters on the
// referenced item are caches derived from the set of entries.
type LedgerEntry struct {
	EntryID     string    `json:"entryID"` // Primary Key (UUID)
	UserID      string    `json:"userID"`  // Owning account
	Kind        EntryKind `json:"kind"`
	AmountCents int64     `json:"amountCents"` // >= 0, minor currency units
	Description string    `json:"description"`
	Item        *ItemRef  `json:"item,omitempty"` // Optional monetizable item reference
	AuditFields
}
