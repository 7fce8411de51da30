package store

import (
	"pdf-knowledge-be/internal/entity"
)

// DocumentRegistry is the append-only JSON log of ingested files, persisted
// as {"documents": [...]} the way the original assistant wrote it.
type DocumentRegistry struct {
	file *JSONFile
}

type registryDocument struct {
	Documents []entity.DocumentRecord `json:"documents"`
}

func NewDocumentRegistry(path string) *DocumentRegistry {
	return &DocumentRegistry{file: NewJSONFile(path)}
}

// Append adds one record to the registry. Existing records are never touched;
// uploading the same file twice yields two entries.
func (r *DocumentRegistry) Append(record entity.DocumentRecord) error {
	var reg registryDocument
	return r.file.Update(&reg, func(found bool) (interface{}, error) {
		if !found {
			reg = registryDocument{Documents: []entity.DocumentRecord{}}
		}
		reg.Documents = append(reg.Documents, record)
		return &reg, nil
	})
}

// All returns every registry record in ingestion order.
func (r *DocumentRegistry) All() ([]entity.DocumentRecord, error) {
	var reg registryDocument
	found, err := r.file.Load(&reg)
	if err != nil {
		return nil, err
	}
	if !found || reg.Documents == nil {
		return []entity.DocumentRecord{}, nil
	}
	return reg.Documents, nil
}

func (r *DocumentRegistry) Count() (int, error) {
	docs, err := r.All()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
