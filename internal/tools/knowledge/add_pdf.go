package knowledge

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/entity"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/store"
	"pdf-knowledge-be/internal/tools"
	"pdf-knowledge-be/pkg/embedding"
	"pdf-knowledge-be/pkg/pdfdoc"
	"pdf-knowledge-be/pkg/utils"
	"pdf-knowledge-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// AddPdfToKnowledge ingests a PDF into the persistent knowledge base:
// loads the pages, chunks and embeds them, appends the chunks to the vector
// store, persists the store, and records the document in the registry.
type AddPdfToKnowledge struct {
	loader       *pdfdoc.Loader
	embedder     embedding.EmbeddingProvider
	vectorStore  vectorstore.Store
	registry     *store.DocumentRegistry
	chunkSize    int
	chunkOverlap int
	log          logger.ILogger
}

func NewAddPdfToKnowledge(
	loader *pdfdoc.Loader,
	embedder embedding.EmbeddingProvider,
	vectorStore vectorstore.Store,
	registry *store.DocumentRegistry,
	chunkSize int,
	chunkOverlap int,
	log logger.ILogger,
) *AddPdfToKnowledge {
	return &AddPdfToKnowledge{
		loader:       loader,
		embedder:     embedder,
		vectorStore:  vectorStore,
		registry:     registry,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		log:          log,
	}
}

func (t *AddPdfToKnowledge) Name() string {
	return constant.ToolAddPdfToKnowledge
}

func (t *AddPdfToKnowledge) Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{} {
	filePath := tools.StringArg(args, "file_path")

	if filePath == "" {
		return "Error: Missing required input 'file_path'."
	}

	fileSize, err := pdfdoc.Stat(filePath)
	if err != nil {
		return tools.Errorf("File not found: %s", filePath)
	}

	// Extension check happens before any write touches the filesystem
	if !pdfdoc.IsPDF(filePath) {
		return tools.Errorf("File must be a PDF: %s", filePath)
	}

	t.log.Info("AddPdfToKnowledge", "Adding PDF to knowledge base", map[string]interface{}{"file_path": filePath})

	pages, err := t.loader.Load(filePath)
	if err != nil {
		t.log.Error("AddPdfToKnowledge", "Failed to load PDF", map[string]interface{}{"file_path": filePath, "error": err.Error()})
		return tools.Errorf("Invalid file or unsupported input: %s - %v", filePath, err)
	}

	chunks, err := t.embedPages(pages)
	if err != nil {
		t.log.Error("AddPdfToKnowledge", "Embedding failed", map[string]interface{}{"file_path": filePath, "error": err.Error()})
		return tools.Errorf("Failed to add PDF to knowledge base: %v", err)
	}

	if err := t.vectorStore.Add(ctx, chunks); err != nil {
		return tools.Errorf("Failed to add PDF to knowledge base: %v", err)
	}
	if err := t.vectorStore.Save(ctx); err != nil {
		return tools.Errorf("Failed to add PDF to knowledge base: %v", err)
	}

	filename := filepath.Base(filePath)
	record := entity.DocumentRecord{
		Filename:      filename,
		FilePath:      filePath,
		UploadDate:    time.Now().Format(time.RFC3339),
		PageCount:     len(pages),
		FileSizeBytes: fileSize,
		Status:        entity.DocumentStatusProcessed,
	}
	if err := t.registry.Append(record); err != nil {
		// The chunks made it in; a registry failure should still be surfaced
		t.log.Error("AddPdfToKnowledge", "Failed to update document registry", map[string]interface{}{"filename": filename, "error": err.Error()})
		return tools.Errorf("Failed to update document registry: %v", err)
	}

	t.log.Info("AddPdfToKnowledge", "Successfully added PDF to knowledge base", map[string]interface{}{
		"filename": filename,
		"pages":    len(pages),
		"chunks":   len(chunks),
	})

	return fmt.Sprintf("Successfully added %s to knowledge base - %d pages processed.", filename, len(pages))
}

func (t *AddPdfToKnowledge) embedPages(pages []*entity.PageDocument) ([]*entity.Chunk, error) {
	var chunks []*entity.Chunk
	now := time.Now()

	for _, page := range pages {
		if page.Content == "" {
			continue
		}
		for i, text := range utils.SplitText(page.Content, t.chunkSize, t.chunkOverlap) {
			res, err := t.embedder.Generate(text, constant.TaskTypeDocument)
			if err != nil {
				return nil, fmt.Errorf("embedding chunk %d of page %d: %w", i, page.Page, err)
			}
			chunks = append(chunks, &entity.Chunk{
				Id:         uuid.New(),
				Document:   text,
				Embedding:  res.Embedding.Values,
				Source:     page.Source,
				Page:       page.Page,
				ChunkIndex: i,
				CreatedAt:  now,
			})
		}
	}

	return chunks, nil
}
