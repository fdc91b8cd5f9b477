package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"paperqa/internal/vectorstore"
	vsmocks "paperqa/internal/vectorstore/mocks"
)

type stubEmbedder struct {
	err error
}

func (s stubEmbedder) EmbedText(context.Context, string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1, 0.2}, nil
}

type stubGenerator struct {
	answer string
	err    error
	prompt string
}

func (s *stubGenerator) Chat(_ context.Context, prompt string, _ int) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAsk(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vs := vsmocks.NewMockVectorStore(ctrl)
	vs.EXPECT().Search(gomock.Any(), "papers", gomock.Any(), 30).Return([]vectorstore.SearchResult{
		{Document: "Paper Title: Attention Is All You Need\n\nThe Transformer relies entirely on attention.", Distance: 0.1},
		{Document: "Paper Title: Another Paper\n\nUnrelated material.", Distance: 0.4},
	}, nil)

	gen := &stubGenerator{answer: "The Transformer architecture relies on attention."}
	eng := NewEngine(stubEmbedder{}, vs, gen, "papers", 4000, 1000, testLogger())

	resp, err := eng.Ask(context.Background(), "What does the Transformer rely on?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if resp.ChunksUsed != 2 {
		t.Errorf("expected 2 chunks used, got %d", resp.ChunksUsed)
	}
	if resp.Answer != gen.answer {
		t.Errorf("unexpected answer %q", resp.Answer)
	}
	if resp.Question != "What does the Transformer rely on?" {
		t.Errorf("unexpected question echo %q", resp.Question)
	}
	if !strings.Contains(gen.prompt, "Attention Is All You Need") {
		t.Error("prompt missing retrieved context")
	}
	if !strings.Contains(gen.prompt, RefusalPhrase) {
		t.Error("prompt missing refusal instruction")
	}
}

func TestAskSortsByDistance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Results arrive unordered; the closest chunk must lead the context.
	vs := vsmocks.NewMockVectorStore(ctrl)
	vs.EXPECT().Search(gomock.Any(), "papers", gomock.Any(), 30).Return([]vectorstore.SearchResult{
		{Document: "far chunk", Distance: 0.9},
		{Document: "near chunk", Distance: 0.1},
	}, nil)

	gen := &stubGenerator{answer: "ok"}
	eng := NewEngine(stubEmbedder{}, vs, gen, "papers", 4000, 1000, testLogger())

	if _, err := eng.Ask(context.Background(), "which chunk leads?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	near := strings.Index(gen.prompt, "near chunk")
	far := strings.Index(gen.prompt, "far chunk")
	if near == -1 || far == -1 || near > far {
		t.Errorf("context not ordered by distance: near at %d, far at %d", near, far)
	}
}

func TestAskBudgetLimitsChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	big := strings.Repeat("x", 3500*charsPerToken)
	vs := vsmocks.NewMockVectorStore(ctrl)
	vs.EXPECT().Search(gomock.Any(), "papers", gomock.Any(), 30).Return([]vectorstore.SearchResult{
		{Document: strings.Repeat("a", 1000*charsPerToken), Distance: 0.1},
		{Document: big, Distance: 0.2},
		{Document: strings.Repeat("c", 200*charsPerToken), Distance: 0.3},
	}, nil)

	gen := &stubGenerator{answer: "ok"}
	eng := NewEngine(stubEmbedder{}, vs, gen, "papers", 4000, 1000, testLogger())

	resp, err := eng.Ask(context.Background(), "how many chunks fit?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.ChunksUsed != 1 {
		t.Errorf("expected 1 chunk used, got %d", resp.ChunksUsed)
	}
}

func TestAskRefusalPassthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vs := vsmocks.NewMockVectorStore(ctrl)
	vs.EXPECT().Search(gomock.Any(), "papers", gomock.Any(), 30).Return(nil, nil)

	gen := &stubGenerator{answer: RefusalPhrase}
	eng := NewEngine(stubEmbedder{}, vs, gen, "papers", 4000, 1000, testLogger())

	resp, err := eng.Ask(context.Background(), "what is not in the corpus?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Answer != RefusalPhrase {
		t.Errorf("unexpected answer %q", resp.Answer)
	}
	if resp.ChunksUsed != 0 {
		t.Errorf("expected 0 chunks used, got %d", resp.ChunksUsed)
	}
}

func TestAskStageErrors(t *testing.T) {
	boom := fmt.Errorf("boom")

	t.Run("embedding failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		vs := vsmocks.NewMockVectorStore(ctrl)
		eng := NewEngine(stubEmbedder{err: boom}, vs, &stubGenerator{}, "papers", 4000, 1000, testLogger())

		_, err := eng.Ask(context.Background(), "q")
		if !errors.Is(err, ErrEmbedding) {
			t.Errorf("expected ErrEmbedding, got %v", err)
		}
	})

	t.Run("search failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		vs := vsmocks.NewMockVectorStore(ctrl)
		vs.EXPECT().Search(gomock.Any(), "papers", gomock.Any(), 30).Return(nil, boom)
		eng := NewEngine(stubEmbedder{}, vs, &stubGenerator{}, "papers", 4000, 1000, testLogger())

		_, err := eng.Ask(context.Background(), "q")
		if !errors.Is(err, ErrVectorStore) {
			t.Errorf("expected ErrVectorStore, got %v", err)
		}
	})

	t.Run("generation failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		vs := vsmocks.NewMockVectorStore(ctrl)
		vs.EXPECT().Search(gomock.Any(), "papers", gomock.Any(), 30).Return(nil, nil)
		eng := NewEngine(stubEmbedder{}, vs, &stubGenerator{err: boom}, "papers", 4000, 1000, testLogger())

		_, err := eng.Ask(context.Background(), "q")
		if !errors.Is(err, ErrGeneration) {
			t.Errorf("expected ErrGeneration, got %v", err)
		}
	})
}
