package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/park285/draft-chess/internal/render"
	"github.com/park285/draft-chess/pkg/draftview"
	"go.uber.org/zap"
)

var ErrNoSink = errors.New("snapshot sink not configured")

// Sink stores rendered board images and returns where they went.
type Sink interface {
	Store(ctx context.Context, image []byte) (string, error)
}

// Presenter renders board snapshots and hands them to a sink without coupling
// the front-end to either.
type Presenter struct {
	renderer render.BoardRenderer
	sink     Sink
	logger   *zap.Logger
}

func NewPresenter(renderer render.BoardRenderer, sink Sink, logger *zap.Logger) *Presenter {
	if renderer == nil {
		renderer = render.NewPNGRenderer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{renderer: renderer, sink: sink, logger: logger}
}

// Board renders view and stores the image, returning the sink's location.
func (p *Presenter) Board(ctx context.Context, view *draftview.View, opts render.Options) (string, error) {
	if p == nil || p.sink == nil {
		return "", ErrNoSink
	}
	img, err := p.renderer.RenderPNG(ctx, view, opts)
	if err != nil {
		p.logger.Warn("snapshot_render_failed", zap.Error(err))
		return "", fmt.Errorf("render snapshot: %w", err)
	}
	loc, err := p.sink.Store(ctx, img)
	if err != nil {
		p.logger.Warn("snapshot_store_failed", zap.Error(err))
		return "", fmt.Errorf("store snapshot: %w", err)
	}
	p.logger.Info("snapshot_saved", zap.String("path", loc), zap.Int("bytes", len(img)))
	return loc, nil
}

// FileSink writes numbered PNG files named <dir>/<session>-<n>.png.
type FileSink struct {
	dir     string
	session string

	mu   sync.Mutex
	next int
}

// NewFileSink creates a sink under dir with a fresh session id.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir, session: uuid.NewString(), next: 1}
}

func (s *FileSink) Session() string { return s.session }

func (s *FileSink) Store(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	s.mu.Lock()
	n := s.next
	s.next++
	s.mu.Unlock()

	path := filepath.Join(s.dir, fmt.Sprintf("%s-%d.png", s.session, n))
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
