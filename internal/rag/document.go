package rag

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Document is one retrieval corpus entry. Documents are immutable after
// load; scoring happens on copies.
type Document struct {
	ID       string            `json:"doc_id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// rawDocument matches the on-disk corpus shape, where metadata values are
// mixed numeric and string types.
type rawDocument struct {
	DocID    string         `json:"doc_id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// LoadCorpus reads a JSON corpus file. A missing file is not an error: the
// pipeline degrades to its no-documents path, so (nil, nil) is returned.
func LoadCorpus(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var raw []rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	docs := make([]Document, 0, len(raw))
	for i, r := range raw {
		id := r.DocID
		if id == "" {
			id = fmt.Sprintf("doc_%d", i)
		}
		docs = append(docs, Document{
			ID:       id,
			Content:  r.Content,
			Metadata: stringifyMetadata(r.Metadata),
		})
	}
	return docs, nil
}

func stringifyMetadata(meta map[string]any) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		case nil:
			// dropped
		default:
			if b, err := json.Marshal(val); err == nil {
				out[k] = string(b)
			}
		}
	}
	return out
}
