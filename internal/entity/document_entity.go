package entity

// DocumentRecord is one line of the ingested-document registry. Records are
// created once per successful ingestion and never mutated afterwards.
type DocumentRecord struct {
	Filename      string `json:"filename"`
	FilePath      string `json:"file_path"`
	UploadDate    string `json:"upload_date"` // ISO-8601
	PageCount     int    `json:"page_count"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	Status        string `json:"status"`
}

const DocumentStatusProcessed = "processed"

// PageDocument is the text of a single PDF page plus its source metadata,
// the unit the loader hands to the chunking pipeline.
type PageDocument struct {
	Content    string
	Source     string
	Page       int
	TotalPages int
}
