package service

import (
	"testing"

	"pdf-edit-automation/internal/testutil"
)

func buildTestPDF(pageTexts ...string) []byte {
	return testutil.BuildPDF(pageTexts...)
}

func writeTestPDF(t *testing.T, pageTexts ...string) string {
	t.Helper()
	return testutil.WritePDF(t, pageTexts...)
}

func writeCIDFontTestPDF(t *testing.T, pageTexts ...string) string {
	t.Helper()
	return testutil.WriteCIDFontPDF(t, pageTexts...)
}
