package option

// Option holds either a value or nothing. It is used wherever a field may be
// left unset, so that zero values (width 0, empty float) stay distinguishable
// from "not given".
type Option[T any] struct {
	value  T
	isSome bool
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, isSome: true}
}

// FromOK wraps the common `value, ok` return pair.
func FromOK[T any](value T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}
	return Some(value)
}

func (x Option[T]) IsSome() bool {
	return x.isSome
}

func (x Option[T]) IsNone() bool {
	return !x.isSome
}

func (x Option[T]) Get() T {
	if !x.isSome {
		panic("option is none")
	}
	return x.value
}

// GetOr returns the value, or fallback when x is none.
func (x Option[T]) GetOr(fallback T) T {
	if !x.isSome {
		return fallback
	}
	return x.value
}
