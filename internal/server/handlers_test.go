package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/common"
	"github.com/docsentry/docsentry/internal/decision"
	"github.com/docsentry/docsentry/internal/model"
	"github.com/docsentry/docsentry/internal/validate"
)

type stubFetcher struct {
	records map[string]*model.VerificationRecord
}

func (f *stubFetcher) GetVerification(_ context.Context, id string) (*model.VerificationRecord, error) {
	if record, ok := f.records[id]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("%w: verification %s", common.ErrNotFound, id)
}

func newTestServer(records RecordFetcher) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(validate.NewValidator(validate.DefaultRules()), decision.NewScorer(), records, logger)
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func chequePayload() model.ExtractedDocument {
	return model.ExtractedDocument{
		Kind:          model.KindCheque,
		HolderName:    "Rajesh Kumar",
		BankName:      "State Bank of India",
		AccountNumber: "12345678901",
		IFSCCode:      "SBIN0001234",
		MICRCode:      "110002045",
		ChequeNumber:  "123456",
		Prediction:    model.PredictionPass,
		Confidence:    0.95,
	}
}

func TestHandleHealth(t *testing.T) {
	router := newTestServer(nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleValidate(t *testing.T) {
	router := newTestServer(nil).Router()

	t.Run("clean document", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/validate", chequePayload())
		require.Equal(t, http.StatusOK, rec.Code)

		var result model.ValidationResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
	})

	t.Run("correctable ifsc", func(t *testing.T) {
		doc := chequePayload()
		doc.IFSCCode = "SB1N0001234"

		rec := postJSON(t, router, "/v1/validate", doc)
		require.Equal(t, http.StatusOK, rec.Code)

		var result model.ValidationResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.IsValid)
		require.NotNil(t, result.Corrected)
		assert.Equal(t, "SBIN0001234", result.Corrected.IFSCCode)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleScore(t *testing.T) {
	router := newTestServer(nil).Router()

	t.Run("accepts clean document", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/score", chequePayload())
		require.Equal(t, http.StatusOK, rec.Code)

		var result model.ReviewDecision
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, model.AutoAccept, result.Recommendation)
		assert.True(t, result.AutoProcessable)
	})

	t.Run("rejects empty document", func(t *testing.T) {
		rec := postJSON(t, router, "/v1/score", model.ExtractedDocument{})
		require.Equal(t, http.StatusOK, rec.Code)

		var result model.ReviewDecision
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, model.AutoReject, result.Recommendation)
	})
}

func TestHandleCross(t *testing.T) {
	router := newTestServer(nil).Router()

	mandate := chequePayload()
	mandate.Kind = model.KindMandate
	mandate.MICRCode = ""
	mandate.ChequeNumber = ""

	rec := postJSON(t, router, "/v1/cross", map[string]any{
		"cheque":  chequePayload(),
		"mandate": mandate,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.CrossDocumentComparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Passed)
	assert.InDelta(t, 1.0, result.OverallScore, 1e-9)
}

func TestHandleGetVerification(t *testing.T) {
	record := model.NewVerificationRecord(chequePayload(), model.ValidationResult{IsValid: true}, model.ReviewDecision{
		Recommendation:  model.AutoAccept,
		AutoProcessable: true,
	})
	fetcher := &stubFetcher{records: map[string]*model.VerificationRecord{record.ID: &record}}
	router := newTestServer(fetcher).Router()

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/verifications/"+record.ID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got model.VerificationRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, record.ID, got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/verifications/nope", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRecordEndpointDisabledWithoutStore(t *testing.T) {
	router := newTestServer(nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/v1/verifications/some-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
