package http_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/jahangeer-44/Job-Nest/internal/identity/blob"
)

// discardUploader satisfies blob.Uploader without talking to any object
// store.
type discardUploader struct{}

func (discardUploader) Upload(_ context.Context, _ blob.File, category blob.Category) (string, error) {
	return "https://objects.test/" + string(category) + "/object.png", nil
}

func (discardUploader) Delete(context.Context, string) error { return nil }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
