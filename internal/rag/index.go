package rag

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// Scored pairs a document with its similarity to a query.
type Scored struct {
	Document   Document
	Similarity float32 // 0.0 to 1.0
}

// Index performs similarity search over the corpus.
type Index interface {
	// Add adds documents to the index.
	Add(ctx context.Context, docs []Document) error

	// Search returns the topK most similar documents by descending score.
	Search(ctx context.Context, query string, topK int) ([]Scored, error)

	// Count returns the number of indexed documents.
	Count() int
}

// chromemIndex implements Index over an in-memory chromem-go collection.
type chromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewIndex creates an in-memory index using the given embedder.
func NewIndex(collection string, embedder Embedder) (Index, error) {
	if collection == "" {
		collection = "default"
	}

	db := chromem.NewDB()
	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text)
	}

	col, err := db.GetOrCreateCollection(collection, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &chromemIndex{db: db, collection: col}, nil
}

func (i *chromemIndex) Add(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		err := i.collection.AddDocument(ctx, chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		})
		if err != nil {
			return fmt.Errorf("add document %s: %w", doc.ID, err)
		}
	}
	return nil
}

func (i *chromemIndex) Search(ctx context.Context, query string, topK int) ([]Scored, error) {
	if topK <= 0 {
		topK = 5
	}
	// chromem rejects queries asking for more results than documents.
	if count := i.collection.Count(); count == 0 {
		return nil, nil
	} else if topK > count {
		topK = count
	}

	results, err := i.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	scored := make([]Scored, 0, len(results))
	for _, r := range results {
		scored = append(scored, Scored{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: r.Metadata,
			},
			Similarity: r.Similarity,
		})
	}
	return scored, nil
}

func (i *chromemIndex) Count() int {
	return i.collection.Count()
}
