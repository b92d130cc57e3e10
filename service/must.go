package service

import "reflect"

// NilPanic panics with panicMessage if v is nil (including typed nil pointers,
// maps, slices, chans, funcs and interfaces); otherwise returns v.
// Used by constructors to reject missing dependencies at startup.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
