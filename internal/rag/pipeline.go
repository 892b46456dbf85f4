package rag

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"auracx/internal/llm"
	"auracx/internal/logging"
	"auracx/internal/observability"
)

// Result is the terminal artifact of one pipeline run.
type Result struct {
	Answer             string   `json:"answer"`
	Confidence         float64  `json:"confidence"`
	RequiresEscalation bool     `json:"requires_escalation"`
	SourceIDs          []string `json:"sources,omitempty"`
	SourceCount        int      `json:"source_count"`
	RewrittenQuery     string   `json:"rewritten_query,omitempty"`
}

const (
	noInformationAnswer = "I couldn't find relevant information to answer that query."
	escalationAnswer    = "I'm not confident about that answer. Let me connect you with a specialist who can help better."
	generateFallback    = "I'm unable to answer that right now. Please try again."
	pipelineErrorAnswer = "An error occurred processing your query."

	defaultRerankScore = 0.5
	maxCompressedDocs  = 3
	maxFacts           = 5
	rerankConcurrency  = 4
)

// PipelineConfig tunes the retrieval pipeline.
type PipelineConfig struct {
	TopK int // retrieval depth, default 5
}

// Pipeline runs the six-stage retrieval flow: rewrite, retrieve, rerank,
// compress, generate, validate. Every stage catches its own failures and
// degrades to a named fallback; Process always returns a valid Result.
type Pipeline struct {
	client  llm.Client
	index   Index
	logger  logging.Logger
	metrics *observability.Metrics
	topK    int
}

// NewPipeline creates a pipeline over the given backend and index.
func NewPipeline(client llm.Client, index Index, config PipelineConfig, logger logging.Logger, metrics *observability.Metrics) *Pipeline {
	topK := config.TopK
	if topK <= 0 {
		topK = 5
	}
	return &Pipeline{
		client:  client,
		index:   index,
		logger:  logging.OrNop(logger),
		metrics: metrics,
		topK:    topK,
	}
}

// Process answers a query against the corpus.
func (p *Pipeline) Process(ctx context.Context, query string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Pipeline panic: %v", r)
			result = Result{
				Answer:             pipelineErrorAnswer,
				Confidence:         0.0,
				RequiresEscalation: true,
			}
		}
	}()

	p.logger.Info("Processing retrieval query: %s", truncate(query, 50))

	rewritten := p.rewriteQuery(ctx, query)

	docs := p.retrieve(ctx, rewritten)
	if len(docs) == 0 {
		return Result{
			Answer:             noInformationAnswer,
			Confidence:         0.3,
			RequiresEscalation: true,
			RewrittenQuery:     rewritten,
		}
	}

	docs = p.rerank(ctx, docs, query)

	compressed := p.compressContext(docs)

	answer := p.generateAnswer(ctx, query, compressed)

	if p.checkHallucination(ctx, answer, docs) {
		p.metrics.ObserveStageFallback(ctx, "validate")
		return Result{
			Answer:             escalationAnswer,
			Confidence:         0.4,
			RequiresEscalation: true,
			SourceIDs:          sourceIDs(docs),
			SourceCount:        len(docs),
			RewrittenQuery:     rewritten,
		}
	}

	confidence := 0.6 + float64(len(docs))*0.1
	if confidence > 0.95 {
		confidence = 0.95
	}

	return Result{
		Answer:             answer,
		Confidence:         confidence,
		RequiresEscalation: false,
		SourceIDs:          sourceIDs(docs),
		SourceCount:        len(docs),
		RewrittenQuery:     rewritten,
	}
}

// rewriteQuery restructures a vague query. Falls back to the original query
// on any failure; this stage never aborts the pipeline.
func (p *Pipeline) rewriteQuery(ctx context.Context, query string) string {
	prompt := fmt.Sprintf(`Rewrite this vague customer query into a structured form that captures intent, emotion, and context:

Original query: %q

Provide a structured interpretation that includes:
1. Primary intent (what they need)
2. Emotional state
3. Context (time, weather, location relevance)
4. Recommended store type

Be concise and specific.`, query)

	resp, err := p.client.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.UserPrompt("", prompt),
		Temperature: 0.3,
		MaxTokens:   200,
	})
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		p.logger.Warn("Query rewriting failed, using original: %v", err)
		p.metrics.ObserveStageFallback(ctx, "rewrite")
		return query
	}
	return resp.Content
}

// retrieve scores the query against the corpus. Failures yield zero
// documents, which the caller short-circuits on.
func (p *Pipeline) retrieve(ctx context.Context, query string) []Document {
	scored, err := p.index.Search(ctx, query, p.topK)
	if err != nil {
		p.logger.Error("Document retrieval failed: %v", err)
		p.metrics.ObserveStageFallback(ctx, "retrieve")
		return nil
	}

	docs := make([]Document, 0, len(scored))
	for _, s := range scored {
		docs = append(docs, s.Document)
	}
	p.logger.Info("Retrieved %d documents", len(docs))
	return docs
}

// rerank scores each document against the original query with one
// completion call per document. Scoring calls run concurrently and results
// are reassembled by document index before the stable sort, so output is
// deterministic. Any per-document failure falls back to the neutral score;
// with all scores equal the stable sort preserves retrieval order.
func (p *Pipeline) rerank(ctx context.Context, docs []Document, query string) []Document {
	if len(docs) == 0 {
		return docs
	}

	scores := make([]float64, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rerankConcurrency)
	for idx := range docs {
		g.Go(func() error {
			scores[idx] = p.scoreDocument(gctx, docs[idx], query)
			return nil
		})
	}
	_ = g.Wait()

	type ranked struct {
		doc   Document
		score float64
	}
	items := make([]ranked, len(docs))
	for i, doc := range docs {
		items[i] = ranked{doc: doc, score: scores[i]}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	out := make([]Document, len(items))
	for i, item := range items {
		out[i] = item.doc
	}
	return out
}

func (p *Pipeline) scoreDocument(ctx context.Context, doc Document, query string) float64 {
	prompt := fmt.Sprintf(`Rate how relevant this customer interaction is to the query.

Query: %s
Customer context: %s
Interpreted need: %s

Provide a relevance score (0-1) with brief explanation.`,
		query, doc.Content, doc.Metadata["interpreted_need"])

	resp, err := p.client.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.UserPrompt("", prompt),
		Temperature: 0.1,
		MaxTokens:   100,
	})
	if err != nil {
		p.logger.Warn("Rerank scoring failed for %s: %v", doc.ID, err)
		p.metrics.ObserveStageFallback(ctx, "rerank")
		return defaultRerankScore
	}
	return extractScore(resp.Content)
}

// extractScore pulls the first numeric token from free-form model output,
// clamped to [0,1]. This channel is best-effort: anything unparsable
// defaults to the neutral score.
func extractScore(text string) float64 {
	for _, field := range strings.Fields(text) {
		token := strings.Trim(field, ".,;:()[]%")
		score, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		if score < 0 {
			return 0
		}
		if score > 1 {
			return 1
		}
		return score
	}
	return defaultRerankScore
}

// compressContext summarizes at most the top three documents into a bounded
// context block. An empty list yields a fixed placeholder.
func (p *Pipeline) compressContext(docs []Document) string {
	if len(docs) == 0 {
		return "No relevant information found."
	}

	limit := maxCompressedDocs
	if len(docs) < limit {
		limit = len(docs)
	}

	var sb strings.Builder
	sb.WriteString("Based on similar customer interactions:\n")
	for _, doc := range docs[:limit] {
		meta := doc.Metadata
		fmt.Fprintf(&sb, `
- Context: %s
  Emotion: %s
  Weather: %s
  Store: %s
  Need: %s
  Offer: %s
`,
			doc.Content,
			metaOr(meta, "emotion", "unknown"),
			metaOr(meta, "weather", "unknown"),
			metaOr(meta, "store", "unknown"),
			metaOr(meta, "interpreted_need", "unknown"),
			metaOr(meta, "offer", "none"))
	}
	return sb.String()
}

// generateAnswer produces the customer-facing text from the compressed
// context. Falls back to fixed apology text on failure.
func (p *Pipeline) generateAnswer(ctx context.Context, query, contextBlock string) string {
	prompt := fmt.Sprintf(`You are a helpful customer service AI. Answer the customer's query using the provided context from similar customer interactions.

Customer Query: %s

Context from similar interactions:
%s

Provide a helpful, personalized response that:
1. Addresses their likely need
2. Recommends specific store/offer if relevant
3. Considers weather/location/emotion
4. Is concise and actionable`, query, contextBlock)

	resp, err := p.client.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.UserPrompt("", prompt),
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		p.logger.Error("Answer generation failed: %v", err)
		p.metrics.ObserveStageFallback(ctx, "generate")
		return generateFallback
	}
	return resp.Content
}

// checkHallucination asks the backend whether the answer is consistent with
// facts drawn from the source documents. Zero supporting documents is
// itself a hallucination: an ungrounded answer is always flagged. A failed
// check call does not flag.
func (p *Pipeline) checkHallucination(ctx context.Context, answer string, docs []Document) bool {
	if len(docs) == 0 {
		return true
	}

	var facts []string
	for _, doc := range docs {
		meta := doc.Metadata
		facts = append(facts,
			"store: "+meta["store"],
			"emotion: "+meta["emotion"],
			"weather: "+meta["weather"],
			"need: "+meta["interpreted_need"],
		)
		if len(facts) >= maxFacts {
			break
		}
	}
	if len(facts) > maxFacts {
		facts = facts[:maxFacts]
	}

	prompt := fmt.Sprintf(`Analyze if this answer contradicts the source information.

Answer: %s

Source facts:
%s

Is the answer consistent with the sources? Answer yes or no.`,
		answer, strings.Join(facts, ", "))

	resp, err := p.client.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.UserPrompt("", prompt),
		Temperature: 0.1,
		MaxTokens:   20,
	})
	if err != nil {
		p.logger.Warn("Hallucination check failed: %v", err)
		return false
	}
	return containsWordNo(resp.Content)
}

// containsWordNo reports whether "no" appears as a standalone word.
func containsWordNo(text string) bool {
	for _, field := range strings.Fields(strings.ToLower(text)) {
		if strings.Trim(field, ".,!?;:") == "no" {
			return true
		}
	}
	return false
}

func sourceIDs(docs []Document) []string {
	limit := maxCompressedDocs
	if len(docs) < limit {
		limit = len(docs)
	}
	ids := make([]string, 0, limit)
	for _, doc := range docs[:limit] {
		ids = append(ids, doc.ID)
	}
	return ids
}

func metaOr(meta map[string]string, key, fallback string) string {
	if v, ok := meta[key]; ok && v != "" {
		return v
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
