package app

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/assets"
	"github.com/Faultbox/stageviewer/internal/engine/ui2d"
)

// thumbnail is the 2D fallback shown when the model fails. The image is
// fetched in the background and uploaded on the render thread.
type thumbnail struct {
	requested bool
	pending   chan *image.RGBA

	tex           uint32
	width, height int
}

func (t *thumbnail) request(m *assets.Manager, ref string, log *zap.Logger) {
	if ref == "" || t.requested {
		return
	}
	t.requested = true
	t.pending = make(chan *image.RGBA, 1)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		img, err := m.LoadImage(ctx, ref)
		if err != nil {
			log.Warn("thumbnail unavailable", zap.String("ref", ref), zap.Error(err))
		}
		t.pending <- img
	}()
}

// poll uploads a finished fetch. Render thread only.
func (t *thumbnail) poll() {
	if t.pending == nil {
		return
	}
	select {
	case img := <-t.pending:
		t.pending = nil
		if img == nil {
			// Let a later failure try again.
			t.requested = false
			return
		}
		t.tex = ui2d.UploadImage(img)
		t.width, t.height = img.Bounds().Dx(), img.Bounds().Dy()
	default:
	}
}

func (t *thumbnail) ready() bool {
	return t.tex != 0
}

func (t *thumbnail) release() {
	if t.tex != 0 {
		ui2d.DeleteImage(t.tex)
		t.tex = 0
	}
}
