package cli

import (
	"context"

	"github.com/fluffyai/helpdesk-cli/internal/config"
	"github.com/fluffyai/helpdesk-cli/internal/core/domain"
	"github.com/fluffyai/helpdesk-cli/internal/core/ports/driven"
)

// fakeIngestor records calls and returns a canned report.
type fakeIngestor struct {
	report  *domain.IngestReport
	lastDir string
}

func (f *fakeIngestor) IngestDirectory(_ context.Context, root string) (*domain.IngestReport, error) {
	f.lastDir = root
	return f.report, nil
}

func (f *fakeIngestor) IngestFile(context.Context, string) (*domain.IngestReport, error) {
	return f.report, nil
}

// fakeVectorIndex tracks Clear calls and a fixed count.
type fakeVectorIndex struct {
	count   int
	cleared bool
}

func (f *fakeVectorIndex) Upsert(context.Context, []domain.DocumentChunk) error { return nil }
func (f *fakeVectorIndex) Query(context.Context, []float32, int) ([]domain.SearchResult, error) {
	return []domain.SearchResult{}, nil
}
func (f *fakeVectorIndex) Clear(context.Context) error {
	f.cleared = true
	f.count = 0
	return nil
}
func (f *fakeVectorIndex) Count() int   { return f.count }
func (f *fakeVectorIndex) Close() error { return nil }

// fakeEmbedder satisfies the status command's needs.
type fakeEmbedder struct {
	pingErr error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{0}, nil
}
func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{0}
	}
	return out, nil
}
func (f *fakeEmbedder) Dimensions() int            { return 1 }
func (f *fakeEmbedder) ModelName() string          { return "fake-embedder" }
func (f *fakeEmbedder) Ping(context.Context) error { return f.pingErr }
func (f *fakeEmbedder) Close() error               { return nil }

// fakeLLM satisfies the status command's needs.
type fakeLLM struct {
	pingErr error
}

func (f *fakeLLM) Chat(context.Context, []domain.ConversationTurn, driven.ChatOptions) (string, error) {
	return "ok", nil
}
func (f *fakeLLM) ModelName() string          { return "fake-llm" }
func (f *fakeLLM) Ping(context.Context) error { return f.pingErr }
func (f *fakeLLM) Close() error               { return nil }

// fakeSessionStore holds sessions in memory.
type fakeSessionStore struct {
	sessions map[string][]domain.ConversationTurn
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string][]domain.ConversationTurn)}
}

func (f *fakeSessionStore) SaveTurn(_ context.Context, id string, turn domain.ConversationTurn) error {
	f.sessions[id] = append(f.sessions[id], turn)
	return nil
}

func (f *fakeSessionStore) History(_ context.Context, id string) ([]domain.ConversationTurn, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionStore) ListSessions(context.Context) ([]driven.SessionInfo, error) {
	var out []driven.SessionInfo
	for id, turns := range f.sessions {
		out = append(out, driven.SessionInfo{ID: id, Turns: len(turns)})
	}
	return out, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) Close() error { return nil }

// setupTestServices injects fakes and returns them with a cleanup func.
func setupTestServices() (*fakeIngestor, *fakeVectorIndex, *fakeSessionStore, func()) {
	fi := &fakeIngestor{report: &domain.IngestReport{Documents: 2, Chunks: 5}}
	fv := &fakeVectorIndex{count: 5}
	fs := newFakeSessionStore()

	SetServices(Services{
		Config:           config.Default(),
		Ingestor:         fi,
		VectorIndex:      fv,
		EmbeddingService: &fakeEmbedder{},
		LLMService:       &fakeLLM{},
		SessionStore:     fs,
	})
	cleanup := func() {
		SetServices(Services{})
	}
	return fi, fv, fs, cleanup
}
