package transaction

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hqtran/billscan/internal/domain/common"
)

func newTestHandler(repo Repository) *Handler {
	logger := slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))
	return NewHandler(newTestService(repo), logger)
}

func TestHandlerCreate(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	h := newTestHandler(repo)

	body := `{"amount":150000,"currency":"VND","category":"food","type":"expense","description":"NHA HANG ABC","date":"2024-03-01"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader(body))
	req.Header.Set("X-User-ID", uuid.NewString())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got Transaction
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(150000), got.Amount)
	assert.Equal(t, common.VND, got.Currency)
}

func TestHandlerCreateValidationError(t *testing.T) {
	h := newTestHandler(new(mockRepo))

	body := `{"amount":0,"currency":"VND","category":"food","description":"x y z"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader(body))
	req.Header.Set("X-User-ID", uuid.NewString())
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCreateMissingUser(t *testing.T) {
	h := newTestHandler(new(mockRepo))

	req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerList(t *testing.T) {
	repo := new(mockRepo)
	userID := uuid.New()
	repo.On("ListByUser", mock.Anything, userID, 50, 0).
		Return([]Transaction{*sampleTransaction(userID)}, nil)
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions", nil)
	req.Header.Set("X-User-ID", userID.String())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Transactions []Transaction `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "NHA HANG ABC", got.Transactions[0].Description)
}

func TestHandlerGetNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, common.ErrNotFound)
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions/"+uuid.NewString(), nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()

	h.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
