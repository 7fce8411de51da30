package dto

import "pdf-knowledge-be/internal/entity"

// UploadResponse mirrors the original interface contract:
// {success|error, message, filename, filepath}.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
}

type DocumentsResponse struct {
	Documents []entity.DocumentRecord `json:"documents"`
}

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type TopicFactsResponse struct {
	Topic string `json:"topic"`
	Facts string `json:"facts"`
}

type StatsResponse struct {
	DocumentCount int   `json:"document_count"`
	TopicCount    int   `json:"topic_count"`
	ChunkCount    int64 `json:"chunk_count"`
}

// PublishExtractKnowledgeMessage is the payload carried on the in-process
// extraction pipeline after a successful upload.
type PublishExtractKnowledgeMessage struct {
	FilePath string `json:"file_path"`
	Filename string `json:"filename"`
}
