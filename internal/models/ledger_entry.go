package models

// LedgerEntry maps to the ledger_entries table. ItemKind/ItemID are both NULL when the
// entry references no monetizable item.
type LedgerEntry struct {
	EntryID     string  `json:"entryID"`
	UserID      string  `json:"userID"`
	Kind        string  `json:"kind"`
	AmountCents int64   `json:"amountCents"`
	Description string  `json:"description"`
	ItemKind    *string `json:"itemKind,omitempty"`
	ItemID      *string `json:"itemID,omitempty"`
	AuditFields
}
