package assets

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("asset not found")

// Source fetches named assets such as sample files or compositions.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Dir serves assets from a local directory.
type Dir string

func (d Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "opening asset")
	}
	return f, nil
}

// ReadAll fetches a whole asset into memory.
func ReadAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}
