package harfbuzz

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
)

// Shaper is a shaping backend.
//
// Shape converts the Unicode content of buf to positioned glyphs. It returns
// false if the backend cannot handle the font or the buffer; the buffer may
// then be in any state, the caller restores it.
type Shaper interface {
	Name() string
	Shape(font *Font, buf *Buffer, features []Feature) bool
}

// ShaperListEnv is the environment variable used to reorder the backends.
// It holds a comma separated list of backend names which are moved to the
// front of the list, in the given order.
const ShaperListEnv = "HB_SHAPER_LIST"

type shaperRegistry struct {
	mu      sync.RWMutex
	once    sync.Once
	getenv  func(string) string
	entries []Shaper
}

func newShaperRegistry(getenv func(string) string, builtins ...Shaper) *shaperRegistry {
	return &shaperRegistry{getenv: getenv, entries: builtins}
}

// init applies the backend order from the environment on first use.
func (r *shaperRegistry) init() {
	r.once.Do(func() {
		env := strings.TrimSpace(r.getenv(ShaperListEnv))
		if env == "" {
			return
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		r.entries = reorderShapers(r.entries, strings.Split(env, ","))
		tracer().Infof("shaper order from %s: %v", ShaperListEnv, names(r.entries))
	})
}

// reorderShapers moves the shapers named in preferred to the front.
func reorderShapers(shapers []Shaper, preferred []string) []Shaper {
	var front, back []Shaper
	for _, name := range preferred {
		name = strings.TrimSpace(name)
		if i := indexOf(shapers, name); i >= 0 && indexOf(front, name) < 0 {
			front = append(front, shapers[i])
		}
	}
	for _, s := range shapers {
		if indexOf(front, s.Name()) < 0 {
			back = append(back, s)
		}
	}
	return append(front, back...)
}

func indexOf(shapers []Shaper, name string) int {
	return slices.IndexFunc(shapers, func(s Shaper) bool { return s.Name() == name })
}

func (r *shaperRegistry) register(shaper Shaper) error {
	if shaper == nil {
		return errShaper("cannot register nil shaper")
	}
	name := strings.TrimSpace(shaper.Name())
	if name == "" {
		return errShaper("cannot register shaper with empty name")
	}
	r.init()
	r.mu.Lock()
	defer r.mu.Unlock()
	if indexOf(r.entries, name) >= 0 {
		return fmt.Errorf("%w: %q", ErrShaperAlreadyRegistered, name)
	}
	r.entries = append([]Shaper{shaper}, r.entries...)
	return nil
}

func (r *shaperRegistry) unregister(name string) bool {
	r.init()
	r.mu.Lock()
	defer r.mu.Unlock()
	i := indexOf(r.entries, name)
	if i < 0 {
		return false
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return true
}

// candidates returns the shapers to try, in order. A non-nil list of names
// restricts and orders the result; unknown names are skipped.
func (r *shaperRegistry) candidates(requested []string) []Shaper {
	r.init()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if requested == nil {
		return slices.Clone(r.entries)
	}
	var shapers []Shaper
	for _, name := range requested {
		if i := indexOf(r.entries, name); i >= 0 && indexOf(shapers, name) < 0 {
			shapers = append(shapers, r.entries[i])
		}
	}
	return shapers
}

func names(shapers []Shaper) []string {
	n := make([]string, len(shapers))
	for i, s := range shapers {
		n[i] = s.Name()
	}
	return n
}

var defaultShaperRegistry = newShaperRegistry(os.Getenv, builtInShapers()...)

func builtInShapers() []Shaper {
	return []Shaper{otShaper{}, fallbackShaper{}, trivialShaper{}}
}

// ListShapers returns the names of the available backends, in the order
// Shape tries them.
func ListShapers() []string {
	return names(defaultShaperRegistry.candidates(nil))
}

// RegisterShaper adds a backend in front of the existing ones.
func RegisterShaper(shaper Shaper) error {
	return defaultShaperRegistry.register(shaper)
}

// UnregisterShaper removes a backend. It returns false if no backend of
// that name is registered.
func UnregisterShaper(name string) bool {
	return defaultShaperRegistry.unregister(name)
}
