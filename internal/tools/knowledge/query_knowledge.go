package knowledge

import (
	"context"
	"strings"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/tools"
	"pdf-knowledge-be/pkg/embedding"
	"pdf-knowledge-be/pkg/vectorstore"
)

// QueryPdfKnowledge answers a free-text query with the concatenated text of
// the most similar chunks in the knowledge base.
type QueryPdfKnowledge struct {
	embedder    embedding.EmbeddingProvider
	vectorStore vectorstore.Store
	topK        int
	threshold   float64
	log         logger.ILogger
}

func NewQueryPdfKnowledge(
	embedder embedding.EmbeddingProvider,
	vectorStore vectorstore.Store,
	topK int,
	threshold float64,
	log logger.ILogger,
) *QueryPdfKnowledge {
	return &QueryPdfKnowledge{
		embedder:    embedder,
		vectorStore: vectorStore,
		topK:        topK,
		threshold:   threshold,
		log:         log,
	}
}

func (t *QueryPdfKnowledge) Name() string {
	return constant.ToolQueryPdfKnowledge
}

func (t *QueryPdfKnowledge) Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{} {
	query := tools.StringArg(args, "query")

	if query == "" {
		return "Error: Missing required input 'query'."
	}

	t.log.Info("QueryPdfKnowledge", "Querying PDF knowledge base", map[string]interface{}{"query": query})

	count, err := t.vectorStore.Count(ctx)
	if err != nil {
		return tools.Errorf("Failed to load knowledge base. The vector store may be corrupted.")
	}
	if count == 0 {
		return "Error: No knowledge base found. Please upload PDF documents first."
	}

	res, err := t.embedder.Generate(query, constant.TaskTypeQuery)
	if err != nil {
		return tools.Errorf("Failed to query knowledge base: %v", err)
	}

	scored, err := t.vectorStore.Search(ctx, res.Embedding.Values, t.topK, t.threshold)
	if err != nil {
		return tools.Errorf("Failed to query knowledge base: %v", err)
	}

	parts := make([]string, 0, len(scored))
	for _, sc := range scored {
		if text := strings.TrimSpace(sc.Chunk.Document); text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "No relevant information found in the knowledge base for this query."
	}

	t.log.Info("QueryPdfKnowledge", "Successfully queried PDF knowledge base", map[string]interface{}{"matches": len(parts)})

	return strings.Join(parts, "\n\n")
}
