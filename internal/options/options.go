// Package options implements generic functional options shared by the
// constructors in this module (codespace.NewSpace, assign.New, verify.Check,
// table.Encode, ...).
package options

// Option configures a value of type T. Only this package can implement it, so
// every option is built through New or NoError.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to Option.
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.fn(target)
}

// New returns an option that runs fn and propagates its error.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError returns an option for a setter that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		fn: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply runs opts against target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
