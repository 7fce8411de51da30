package knowledge

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/tools"
	"pdf-knowledge-be/pkg/pdfdoc"
)

// maxSampleChars bounds the text sample embedded in the summary to stay
// inside downstream model context limits.
const maxSampleChars = 10000

// ExtractPdfKnowledge produces a structured content overview of a PDF for the
// agent to mine topics and facts from (via commit_to_memory).
type ExtractPdfKnowledge struct {
	loader *pdfdoc.Loader
	log    logger.ILogger
}

func NewExtractPdfKnowledge(loader *pdfdoc.Loader, log logger.ILogger) *ExtractPdfKnowledge {
	return &ExtractPdfKnowledge{loader: loader, log: log}
}

func (t *ExtractPdfKnowledge) Name() string {
	return constant.ToolExtractPdfKnowledge
}

func (t *ExtractPdfKnowledge) Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{} {
	filePath := tools.StringArg(args, "file_path")
	focusAreas := tools.StringSliceArg(args, "focus_areas")

	if filePath == "" {
		return "Error: Missing required input 'file_path'."
	}
	if _, err := pdfdoc.Stat(filePath); err != nil {
		return tools.Errorf("File not found: %s", filePath)
	}
	if !pdfdoc.IsPDF(filePath) {
		return tools.Errorf("File must be a PDF: %s", filePath)
	}

	t.log.Info("ExtractPdfKnowledge", "Extracting knowledge from PDF", map[string]interface{}{"file_path": filePath})

	pages, err := t.loader.Load(filePath)
	if err != nil || len(pages) == 0 {
		return tools.Errorf("Failed to load document or document is empty: %s", filePath)
	}

	pageTexts := make([]string, 0, len(pages))
	for _, page := range pages {
		pageTexts = append(pageTexts, page.Content)
	}
	fullText := strings.Join(pageTexts, "\n\n")

	sample := truncateRunes(fullText, maxSampleChars)

	summary := buildDocumentSummary(filepath.Base(filePath), len(pages), sample, focusAreas)

	t.log.Info("ExtractPdfKnowledge", "Successfully extracted knowledge from PDF", map[string]interface{}{"filename": filepath.Base(filePath)})

	return summary
}

// truncateRunes cuts s to at most max bytes without splitting a rune, so the
// sample always stays valid UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// buildDocumentSummary renders the overview the agent consumes: header,
// optional focus areas, a bounded content sample and the instruction to store
// findings through commit_to_memory.
func buildDocumentSummary(filename string, pageCount int, sample string, focusAreas []string) string {
	parts := []string{
		fmt.Sprintf("Document: %s", filename),
		fmt.Sprintf("Pages: %d", pageCount),
		"",
		"CONTENT OVERVIEW:",
		"",
	}

	if len(focusAreas) > 0 {
		parts = append(parts,
			fmt.Sprintf("Focus areas requested: %s", strings.Join(focusAreas, ", ")),
			"",
		)
	}

	parts = append(parts,
		"The following is a sample of the document content:",
		"",
		sample,
		"",
		"---",
		"",
		"Please analyze the above content and identify key topics and facts. "+
			"For each significant topic you identify, use the commit_to_memory tool "+
			"to store relevant facts under that topic.",
	)

	if len(focusAreas) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Pay special attention to information related to: %s.",
			strings.Join(focusAreas, ", "),
		))
	}

	return strings.Join(parts, "\n")
}
