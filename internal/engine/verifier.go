package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/model"
)

// Verifier runs the full extract-validate-score pipeline.
type Verifier struct {
	extractor Extractor
	validator Validator
	scorer    Scorer
	logger    *slog.Logger
}

// New creates a verifier from its three stages.
func New(extractor Extractor, validator Validator, scorer Scorer, logger *slog.Logger) *Verifier {
	return &Verifier{
		extractor: extractor,
		validator: validator,
		scorer:    scorer,
		logger:    logger,
	}
}

// Result is the outcome of verifying one image.
type Result struct {
	Err        error
	SourcePath string
	Document   model.ExtractedDocument
	Validation model.ValidationResult
	Decision   model.ReviewDecision
}

// EffectiveDocument returns the corrected document when the validator
// produced one, otherwise the document as extracted.
func (r Result) EffectiveDocument() model.ExtractedDocument {
	if r.Validation.Corrected != nil {
		return *r.Validation.Corrected
	}
	return r.Document
}

// PairResult is the outcome of verifying a cheque/mandate pair.
type PairResult struct {
	Cheque     Result
	Mandate    Result
	Comparison model.CrossDocumentComparison
}

// Verify runs one image through the pipeline. The scorer consumes the
// document exactly as the model reported it; the validator's corrections
// only affect the validation result.
func (v *Verifier) Verify(ctx context.Context, req extract.ImageRequest) (Result, error) {
	doc, err := v.extractor.Extract(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("extraction failed: %w", err)
	}

	result := Result{
		Document:   doc,
		Validation: v.validator.Validate(doc),
		Decision:   v.scorer.Decide(doc),
	}

	v.logger.Info("document verified",
		"kind", doc.Kind,
		"valid", result.Validation.IsValid,
		"recommendation", result.Decision.Recommendation,
		"risk_score", result.Decision.RiskScore)

	return result, nil
}

// VerifyPair verifies a cheque and a mandate and cross-checks them. The
// comparison runs on the corrected documents so an OCR-repaired IFSC does
// not register as a conflict.
func (v *Verifier) VerifyPair(ctx context.Context, chequeReq, mandateReq extract.ImageRequest) (PairResult, error) {
	chequeReq.Kind = model.KindCheque
	mandateReq.Kind = model.KindMandate

	cheque, err := v.Verify(ctx, chequeReq)
	if err != nil {
		return PairResult{}, fmt.Errorf("cheque verification failed: %w", err)
	}
	mandate, err := v.Verify(ctx, mandateReq)
	if err != nil {
		return PairResult{}, fmt.Errorf("mandate verification failed: %w", err)
	}

	comparison := v.validator.Compare(cheque.EffectiveDocument(), mandate.EffectiveDocument())

	v.logger.Info("document pair cross-checked",
		"passed", comparison.Passed,
		"conflicts", len(comparison.Conflicts),
		"overall_score", comparison.OverallScore)

	return PairResult{
		Cheque:     cheque,
		Mandate:    mandate,
		Comparison: comparison,
	}, nil
}

// VerifyFile reads one image from disk and verifies it.
func (v *Verifier) VerifyFile(ctx context.Context, path string, kind model.DocumentKind) (Result, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied image path
	if err != nil {
		return Result{}, fmt.Errorf("failed to read image: %w", err)
	}

	result, err := v.Verify(ctx, extract.ImageRequest{
		Data: data,
		MIME: mimeForPath(path),
		Kind: kind,
	})
	if err != nil {
		return Result{}, err
	}
	result.SourcePath = path
	return result, nil
}

// VerifyFiles verifies a set of images concurrently with a bounded worker
// pool. Results arrive in input order; per-file failures are recorded on
// the result rather than aborting the batch. onDone, when non-nil, is
// invoked once per finished file from worker goroutines.
func (v *Verifier) VerifyFiles(ctx context.Context, paths []string, kind model.DocumentKind, workers int, onDone func(Result)) []Result {
	if workers <= 0 {
		workers = 4
	}

	results := make([]Result, len(paths))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				result := Result{SourcePath: p, Err: ctx.Err()}
				results[idx] = result
				if onDone != nil {
					onDone(result)
				}
				return
			}

			result, err := v.VerifyFile(ctx, p, kind)
			if err != nil {
				result = Result{SourcePath: p, Err: err}
			}
			results[idx] = result

			if onDone != nil {
				onDone(result)
			}
		}(i, path)
	}

	wg.Wait()
	return results
}

var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
}

func mimeForPath(path string) string {
	if mime, ok := imageMIMETypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return "image/jpeg"
}
