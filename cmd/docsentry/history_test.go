package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docsentry/docsentry/internal/model"
)

func TestHistoryLine(t *testing.T) {
	record := model.VerificationRecord{
		ID:        "4d3f2a1b-0000-0000-0000-000000000000",
		Kind:      model.KindCheque,
		Status:    model.ReviewAuto,
		CreatedAt: time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
		Document: model.ExtractedDocument{
			Kind:       model.KindCheque,
			HolderName: "Rajesh Kumar",
		},
		Decision: model.ReviewDecision{
			Recommendation:  model.AutoAccept,
			RiskScore:       6,
			AutoProcessable: true,
		},
	}

	line := historyLine(record)
	assert.Contains(t, line, "2025-03-15 10:30")
	assert.Contains(t, line, "CHEQUE")
	assert.Contains(t, line, "AUTO_ACCEPT")
	assert.Contains(t, line, "Rajesh Kumar")

	record.Document.HolderName = ""
	assert.Contains(t, historyLine(record), "(unknown holder)")
}
