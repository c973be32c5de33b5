package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
)

// mockEmbedder embeds text as a bag-of-words vector so that texts sharing
// words land near each other under cosine distance. Deterministic, no
// network.
type mockEmbedder struct {
	dims int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{dims: 64}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, m.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?$")
		if word == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%uint32(m.dims)]++
	}
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(float64(norm)))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int            { return m.dims }
func (m *mockEmbedder) ModelName() string          { return "mock-embedder" }
func (m *mockEmbedder) Ping(context.Context) error { return nil }
func (m *mockEmbedder) Close() error               { return nil }

// failingEmbedder always errors.
type failingEmbedder struct {
	mockEmbedder
}

func (f *failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("embedder is down")
}

func (f *failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, fmt.Errorf("embedder is down")
}

// mockVectorIndex is an in-memory vector index keyed by chunk ID.
type mockVectorIndex struct {
	mu     sync.Mutex
	chunks map[string]domain.DocumentChunk
}

func newMockVectorIndex() *mockVectorIndex {
	return &mockVectorIndex{chunks: make(map[string]domain.DocumentChunk)}
}

func (m *mockVectorIndex) Upsert(_ context.Context, chunks []domain.DocumentChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range chunks {
		m.chunks[c.ID] = c
	}
	return nil
}

func (m *mockVectorIndex) Query(_ context.Context, embedding []float32, k int) ([]domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type scored struct {
		chunk    domain.DocumentChunk
		distance float64
	}
	var all []scored
	for _, c := range m.chunks {
		all = append(all, scored{chunk: c, distance: 1 - cosine(embedding, c.Embedding)})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].distance < all[j].distance })

	if k > len(all) {
		k = len(all)
	}
	results := make([]domain.SearchResult, 0, k)
	for _, s := range all[:k] {
		d := s.distance
		results = append(results, domain.SearchResult{
			Content:  s.chunk.Content,
			Source:   s.chunk.Source,
			Type:     s.chunk.Type,
			Distance: &d,
		})
	}
	return results, nil
}

func (m *mockVectorIndex) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = make(map[string]domain.DocumentChunk)
	return nil
}

func (m *mockVectorIndex) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks)
}

func (m *mockVectorIndex) Close() error { return nil }

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// recordingLLM records the message sequence and options of every Chat call.
type recordingLLM struct {
	calls   [][]domain.ConversationTurn
	opts    []driven.ChatOptions
	reply   string
	failErr error
}

func (r *recordingLLM) Chat(
	_ context.Context, messages []domain.ConversationTurn, opts driven.ChatOptions,
) (string, error) {
	copied := make([]domain.ConversationTurn, len(messages))
	copy(copied, messages)
	r.calls = append(r.calls, copied)
	r.opts = append(r.opts, opts)
	if r.failErr != nil {
		return "", r.failErr
	}
	if r.reply == "" {
		return "ok", nil
	}
	return r.reply, nil
}

func (r *recordingLLM) ModelName() string          { return "mock-llm" }
func (r *recordingLLM) Ping(context.Context) error { return nil }
func (r *recordingLLM) Close() error               { return nil }

// lastCall returns the messages of the most recent Chat call.
func (r *recordingLLM) lastCall() []domain.ConversationTurn {
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

// lastOpts returns the options of the most recent Chat call.
func (r *recordingLLM) lastOpts() driven.ChatOptions {
	if len(r.opts) == 0 {
		return driven.ChatOptions{}
	}
	return r.opts[len(r.opts)-1]
}

// memorySessionStore keeps transcripts in a map.
type memorySessionStore struct {
	turns      map[string][]domain.ConversationTurn
	historyErr error
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{turns: make(map[string][]domain.ConversationTurn)}
}

func (s *memorySessionStore) SaveTurn(_ context.Context, sessionID string, turn domain.ConversationTurn) error {
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}

func (s *memorySessionStore) History(_ context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.turns[sessionID], nil
}

func (s *memorySessionStore) ListSessions(context.Context) ([]driven.SessionInfo, error) {
	infos := make([]driven.SessionInfo, 0, len(s.turns))
	for id, turns := range s.turns {
		infos = append(infos, driven.SessionInfo{ID: id, Turns: len(turns)})
	}
	return infos, nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, sessionID string) error {
	delete(s.turns, sessionID)
	return nil
}

func (s *memorySessionStore) Close() error { return nil }
