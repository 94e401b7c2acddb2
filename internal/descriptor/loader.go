package descriptor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"building-editor/internal/download"
	"building-editor/internal/logger"
)

// DefaultSources is the fallback chain tried by a zero Loader.
var DefaultSources = []string{"house.json", "building.json"}

// ErrNoSource is returned when no source yields a valid descriptor.
var ErrNoSource = errors.New("no descriptor source succeeded")

// Loader reads the first valid descriptor from an ordered list of file paths
// or http(s) URLs.
type Loader struct {
	Sources []string
	Log     *logger.Logger
	// Fetch reads remote sources. Defaults to download.Fetch.
	Fetch func(ctx context.Context, url string) ([]byte, error)
}

// Load tries each source in order and returns the first document that parses,
// together with the source it came from.
func (l *Loader) Load(ctx context.Context) (*Document, string, error) {
	sources := l.Sources
	if len(sources) == 0 {
		sources = DefaultSources
	}
	var errs []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		data, err := l.read(ctx, src)
		if err == nil {
			var doc *Document
			doc, err = Parse(data)
			if err == nil {
				l.Log.Infof("descriptor: loaded %d objects from %s", len(doc.Objects), src)
				return doc, src, nil
			}
		}
		l.Log.Warnf("descriptor: %s: %v", src, err)
		errs = append(errs, fmt.Errorf("%s: %w", src, err))
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoSource, errors.Join(errs...))
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if IsRemote(src) {
		fetch := l.Fetch
		if fetch == nil {
			fetch = download.Fetch
		}
		return fetch(ctx, src)
	}
	return os.ReadFile(src)
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
