// Package transaction persists user-confirmed transactions produced from
// bill scans or manual entry.
package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/hqtran/billscan/internal/domain/common"
)

const (
	TypeExpense = "expense"
	TypeIncome  = "income"

	// maxNoteRunes bounds the OCR excerpt stored alongside a transaction.
	maxNoteRunes = 500
)

// Transaction is a confirmed ledger entry.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Amount      int64           `json:"amount"`
	Currency    common.Currency `json:"currency"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateRequest carries the fields a caller submits when confirming a
// transaction. Date is YYYY-MM-DD; empty means today.
type CreateRequest struct {
	Amount      int64           `json:"amount"`
	Currency    common.Currency `json:"currency"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Note        string          `json:"note"`
}
