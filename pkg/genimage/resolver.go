package genimage

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/adforgehq/adforge/pkg/brief"
	"github.com/adforgehq/adforge/pkg/observability"
	"github.com/adforgehq/adforge/pkg/ratio"
)

// Source tags where an asset's pixels came from.
type Source string

const (
	SourceReused      Source = "reused"
	SourceGenerated   Source = "generated"
	SourcePlaceholder Source = "placeholder"
)

// Resolver picks the image source for each asset: a pre-supplied file
// when the brief declares one, otherwise the backend, otherwise a
// placeholder.
type Resolver struct {
	backend Backend
	logger  *log.Logger
}

// NewResolver builds a resolver. backend may be nil, which forces the
// placeholder path for every asset without a pre-supplied image.
func NewResolver(backend Backend, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{backend: backend, logger: logger}
}

// Resolve returns the raw image bytes for one product and ratio along
// with the source tag. A declared image path that does not resolve on
// disk is reported through the fallback hook and the generation path is
// taken instead. Only context cancellation and placeholder encoding
// failures surface as errors.
func (r *Resolver) Resolve(ctx context.Context, product brief.Product, ar ratio.AspectRatio, req Request) ([]byte, Source, error) {
	if path := product.ImagePath(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			r.logger.Debug("using pre-supplied image", "product", product.ProductID, "path", path)
			return data, SourceReused, nil
		}
		r.logger.Warn("declared image not found, falling back to generation",
			"product", product.ProductID, "path", path, "err", err)
		observability.Generation().OnSourceFallback(ctx, product.ProductID, path)
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	if r.backend != nil && r.backend.HasCredentials() {
		prompt := BuildPrompt(req, ar)
		data, err := r.backend.GenerateImage(ctx, prompt, ar.Width, ar.Height)
		if err == nil {
			return data, SourceGenerated, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		r.logger.Warn("generation backend failed, using placeholder",
			"product", product.ProductID, "ratio", ar.Name, "err", err)
	} else {
		r.logger.Debug("no generation credentials, using placeholder",
			"product", product.ProductID, "ratio", ar.Name)
	}

	data, err := Placeholder(ar.Width, ar.Height)
	if err != nil {
		return nil, "", err
	}
	return data, SourcePlaceholder, nil
}
