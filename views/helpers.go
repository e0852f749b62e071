package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// RenderBytes renders component fully before anything reaches the client.
func RenderBytes(ctx context.Context, component templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
