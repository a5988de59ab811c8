package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hqtran/billscan/internal/domain/common"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create validates and persists a confirmed transaction. The category and
// currency must come from the closed sets the engine emits; anything else
// is a bad request, not a new enum value.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Transaction, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", common.ErrBadRequest)
	}
	if !req.Currency.Valid() {
		return nil, fmt.Errorf("unknown currency %q: %w", req.Currency, common.ErrBadRequest)
	}

	txType := req.Type
	if txType == "" {
		txType = TypeExpense
	}
	switch txType {
	case TypeExpense:
		if !common.ValidExpenseCategory(req.Category) {
			return nil, fmt.Errorf("unknown expense category %q: %w", req.Category, common.ErrBadRequest)
		}
	case TypeIncome:
		if !common.ValidIncomeCategory(req.Category) {
			return nil, fmt.Errorf("unknown income category %q: %w", req.Category, common.ErrBadRequest)
		}
	default:
		return nil, fmt.Errorf("unknown transaction type %q: %w", txType, common.ErrBadRequest)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("description required: %w", common.ErrBadRequest)
	}

	date := s.now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", req.Date, common.ErrBadRequest)
		}
		date = parsed
	}

	tx := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Type:        txType,
		Description: description,
		Date:        date,
		Note:        truncateRunes(req.Note, maxNoteRunes),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction created",
		slog.String("id", tx.ID.String()),
		slog.Int64("amount", tx.Amount),
		slog.String("currency", string(tx.Currency)),
		slog.String("category", tx.Category),
	)
	return tx, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// truncateRunes cuts s to at most n runes, rune-safe for Vietnamese text.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
