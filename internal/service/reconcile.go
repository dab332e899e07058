package service

import (
	"context"
	"fmt"

	"pdf-edit-automation/internal/domain"

	"github.com/felixgeelhaar/fortify/retry"
)

// pageAttempts is the first append plus exactly one recovery
const pageAttempts = 2

// Reconciler carries every source page, unmodified and in order, into the output document
// and records which pages contain replacement targets.
type Reconciler struct {
	logger   domain.Logger
	recovery retry.Retry[struct{}]
}

// NewReconciler creates a reconciler with a single, immediate recovery attempt per page
func NewReconciler(logger domain.Logger) *Reconciler {
	return &Reconciler{
		logger: logger,
		recovery: retry.New[struct{}](retry.Config{
			MaxAttempts:   pageAttempts,
			InitialDelay:  0,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    1,
		}),
	}
}

// Reconcile runs over every page of src. It ignores cancellation of ctx so the
// output document always reflects a complete pass.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	src domain.SourceDocument,
	dst domain.OutputDocument,
	replacements *domain.ReplacementMap,
) ([]domain.PageOutcome, domain.ProcessingReport) {
	ctx = context.WithoutCancel(ctx)

	var report domain.ProcessingReport
	total := src.PageCount()
	outcomes := make([]domain.PageOutcome, 0, total)

	for pageNr := 1; pageNr <= total; pageNr++ {
		r.logger.Debug("Processing page", "page", pageNr, "total", total)
		outcome := domain.PageOutcome{Page: pageNr}

		text, err := src.PageText(pageNr)
		if err != nil {
			r.logger.Warn("Failed to extract page text", "page", pageNr, "error", err)
			report.Add(domain.DiagnosticPageExtraction, pageNr,
				fmt.Sprintf("Could not extract text from page %d: %v", pageNr, err))
			text = ""
		}

		if key, ok := replacements.FirstContained(text); ok {
			outcome.Matched = key
			r.logger.Debug("Identified text for potential replacement", "page", pageNr, "text", key)
		}

		attempt := 0
		_, err = r.recovery.Do(ctx, func(context.Context) (struct{}, error) {
			attempt++
			// Every attempt fetches the page again by index.
			page, err := src.Page(pageNr)
			if err == nil {
				err = dst.AddPage(page)
			}
			if err == nil {
				return struct{}{}, nil
			}

			if attempt == 1 {
				r.logger.Warn("Failed to add page, retrying once", "page", pageNr, "error", err)
				report.Add(domain.DiagnosticPageAppend, pageNr,
					fmt.Sprintf("ERROR processing page %d: %v", pageNr, err))
			} else {
				report.Add(domain.DiagnosticPageAppendAfterRecovery, pageNr,
					fmt.Sprintf("CRITICAL: Failed to add page %d even after initial processing error: %v", pageNr, err))
			}
			return struct{}{}, err
		})

		switch {
		case err != nil:
			// The page is left out and the output document is shorter than the source.
			outcome.Status = domain.PageNotAdded
			r.logger.Error("Page dropped from output document", err, "page", pageNr)
		case attempt > 1:
			outcome.Status = domain.PageAddedAfterRecovery
			r.logger.Warn("Page added after recovery", "page", pageNr)
		default:
			outcome.Status = domain.PageAdded
			if outcome.Matched != "" {
				r.logger.Warn("Replacement identified but not applied; original page content kept", "page", pageNr)
				report.Add(domain.DiagnosticReplacementNotApplied, pageNr,
					fmt.Sprintf("Identified replacement on page %d but could not apply it.", pageNr))
			}
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, report
}
