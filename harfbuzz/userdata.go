package harfbuzz

import (
	"reflect"
	"sync"
)

// UserData attaches client values to Blobs, Faces, Fonts, FontFuncs,
// UnicodeFuncs and Buffers. Values are keyed by their Go type, so clients
// should use a private type per kind of value:
//
//	type myKey struct{ ... }
//	harfbuzz.SetUserData(&font.UserData, myKey{...}, false)
//
// The zero value is ready to use.
type UserData struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

// SetUserData stores v in ud. If a value of type T is already present and
// replace is false, the existing value is kept and false is returned.
func SetUserData[T any](ud *UserData, v T, replace bool) bool {
	key := reflect.TypeFor[T]()
	ud.mu.Lock()
	defer ud.mu.Unlock()
	if ud.values == nil {
		ud.values = make(map[reflect.Type]any)
	}
	if _, exists := ud.values[key]; exists && !replace {
		return false
	}
	ud.values[key] = v
	return true
}

// GetUserData retrieves the value of type T from ud.
func GetUserData[T any](ud *UserData) (T, bool) {
	ud.mu.Lock()
	defer ud.mu.Unlock()
	v, ok := ud.values[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// RemoveUserData deletes the value of type T from ud, if any.
func RemoveUserData[T any](ud *UserData) {
	ud.mu.Lock()
	defer ud.mu.Unlock()
	delete(ud.values, reflect.TypeFor[T]())
}
