package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Opener abre el contenido crudo del dataset. El llamador cierra el ReadCloser.
type Opener func(ctx context.Context) (io.ReadCloser, error)

// FileOpener abre un archivo local.
func FileOpener(path string) Opener {
	return func(ctx context.Context) (io.ReadCloser, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", path, err)
		}
		return f, nil
	}
}
