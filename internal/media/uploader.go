package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"time"

	"github.com/google/uuid"
)

// Uploader stores a photo under prefix (e.g. "salons/12") and returns
// its public URL.
type Uploader interface {
	Upload(ctx context.Context, prefix string, fh *multipart.FileHeader) (string, error)
}

// Pipeline converts photos to WebP and puts them in a Store.
type Pipeline struct {
	proc  *Processor
	store Store
	now   func() time.Time
}

func NewPipeline(proc *Processor, store Store) *Pipeline {
	return &Pipeline{proc: proc, store: store, now: time.Now}
}

var _ Uploader = (*Pipeline)(nil)

func (u *Pipeline) Upload(ctx context.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	body, err := u.proc.ToWebP(f)
	if err != nil {
		return "", err
	}

	key := path.Join(prefix, u.now().UTC().Format("20060102"), uuid.NewString()+".webp")
	return u.store.Put(ctx, key, body, "image/webp")
}
