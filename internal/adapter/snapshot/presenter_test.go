package snapshot

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/park285/draft-chess/internal/draft"
	"github.com/park285/draft-chess/internal/render"
	"github.com/park285/draft-chess/pkg/draftview"
)

type stubRenderer struct {
	out []byte
	err error
}

func (s stubRenderer) RenderPNG(context.Context, *draftview.View, render.Options) ([]byte, error) {
	return s.out, s.err
}

type memorySink struct {
	stored [][]byte
}

func (m *memorySink) Store(_ context.Context, image []byte) (string, error) {
	m.stored = append(m.stored, image)
	return "mem", nil
}

func TestPresenterWritesNumberedFiles(t *testing.T) {
	g, err := draft.New(draft.DefaultRules())
	if err != nil {
		t.Fatalf("draft.New: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "shots")
	sink := NewFileSink(dir)
	p := NewPresenter(nil, sink, nil)

	first, err := p.Board(context.Background(), g.View(), render.Options{})
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	second, err := p.Board(context.Background(), g.View(), render.Options{})
	if err != nil {
		t.Fatalf("Board: %v", err)
	}

	if _, err := uuid.Parse(sink.Session()); err != nil {
		t.Fatalf("session is not a uuid: %v", err)
	}
	if filepath.Base(first) != sink.Session()+"-1.png" || filepath.Base(second) != sink.Session()+"-2.png" {
		t.Fatalf("unexpected names %s, %s", first, second)
	}
	raw, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("snapshot is not a png: %v", err)
	}
}

func TestPresenterErrors(t *testing.T) {
	if _, err := NewPresenter(nil, nil, nil).Board(context.Background(), &draftview.View{}, render.Options{}); !errors.Is(err, ErrNoSink) {
		t.Fatalf("expected ErrNoSink, got %v", err)
	}

	sink := &memorySink{}
	boom := errors.New("boom")
	p := NewPresenter(stubRenderer{err: boom}, sink, nil)
	if _, err := p.Board(context.Background(), &draftview.View{}, render.Options{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped render error, got %v", err)
	}
	if len(sink.stored) != 0 {
		t.Fatalf("failed render must not reach the sink")
	}

	p = NewPresenter(stubRenderer{out: []byte("png")}, sink, nil)
	loc, err := p.Board(context.Background(), &draftview.View{}, render.Options{})
	if err != nil || loc != "mem" || len(sink.stored) != 1 {
		t.Fatalf("unexpected result %q %v %d", loc, err, len(sink.stored))
	}
}

func TestFileSinkHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := NewFileSink(t.TempDir())
	if _, err := sink.Store(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
