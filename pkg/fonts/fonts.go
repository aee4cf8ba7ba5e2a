// Package fonts resolves font family names to TrueType fonts for raster
// previews.
//
// The Go fonts are embedded through golang.org/x/image/font/gofont, so a
// preview always has a usable face without any system font lookup. The
// classic meme face "Impact" is not redistributable and aliases Go Bold
// unless real Impact data is registered with [Registry.Register].
package fonts

import (
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/memestyle/pkg/errors"
)

// Built-in family names.
const (
	FamilyGoRegular = "Go Regular"
	FamilyGoBold    = "Go Bold"

	// FallbackFamily is used for families the registry does not know.
	FallbackFamily = FamilyGoBold
)

// Registry maps case-insensitive family names to parsed fonts.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	fonts   map[string]*truetype.Font
	aliases map[string]string
}

// NewRegistry returns a registry preloaded with the embedded Go fonts and
// the default aliases ("Impact" → Go Bold, "Helvetica"/"Arial" → Go Regular).
func NewRegistry() *Registry {
	r := &Registry{
		fonts:   make(map[string]*truetype.Font),
		aliases: make(map[string]string),
	}
	// The embedded TTFs are known-good; a parse failure is a build defect.
	for name, data := range map[string][]byte{
		FamilyGoRegular: goregular.TTF,
		FamilyGoBold:    gobold.TTF,
	} {
		if err := r.Register(name, data); err != nil {
			panic(err)
		}
	}
	r.Alias("Impact", FamilyGoBold)
	r.Alias("Helvetica", FamilyGoRegular)
	r.Alias("Arial", FamilyGoRegular)
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry, created on first use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register parses TrueType data and makes it available as family.
// A registered font replaces any alias with the same name.
func (r *Registry) Register(family string, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %q", family)
	}
	key := normalize(family)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[key] = f
	delete(r.aliases, key)
	return nil
}

// Alias makes name resolve to the font registered as target.
func (r *Registry) Alias(name, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[normalize(name)] = normalize(target)
}

// Lookup returns the font for family, following one level of alias.
func (r *Registry) Lookup(family string) (*truetype.Font, error) {
	key := normalize(family)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fonts[key]; ok {
		return f, nil
	}
	if target, ok := r.aliases[key]; ok {
		if f, ok := r.fonts[target]; ok {
			return f, nil
		}
	}
	return nil, errors.New(errors.ErrCodeFontNotFound, "font %q is not registered", family)
}

// Resolve is Lookup with a fallback to FallbackFamily. substituted reports
// whether the fallback was used.
func (r *Registry) Resolve(family string) (f *truetype.Font, substituted bool) {
	if f, err := r.Lookup(family); err == nil {
		return f, false
	}
	f, err := r.Lookup(FallbackFamily)
	if err != nil {
		panic(err)
	}
	return f, true
}

func normalize(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
