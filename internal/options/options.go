// Package options implements the functional-option plumbing shared by every
// option-struct surface in the module: fluence reconstruction, gamma
// parameters, and the text exporter all accept `...Option` lists applied
// over a defaults struct with Apply. The codec read/write options are plain
// function types applied directly by the codecs.
package options

// Option configures a target of type T. Concrete option constructors live
// next to the struct they configure (fluence.WithGridSize,
// gamma.WithThreshold, ...); this interface only carries them.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a closure into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps a fallible configuration closure as an Option.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply runs each option over target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError wraps an infallible configuration closure as an Option. Most of
// the module's options are simple field assignments and use this form.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
