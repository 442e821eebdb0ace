// Package precedence walks an ordered list of lookups and keeps the first hit.
package precedence

// Level is one step of an override hierarchy. Lookup reports ok=false when the
// level has nothing configured, letting the walk fall through.
type Level[T any] struct {
	Name   string
	Lookup func() (value T, ok bool, err error)
}

type Match[T any] struct {
	Value T
	Level string
	Found bool
}

// FirstMatch tries levels in order. The first level that reports ok wins; an
// error stops the walk. No match yields the zero value with Found=false.
func FirstMatch[T any](levels ...Level[T]) (Match[T], error) {
	for _, level := range levels {
		if level.Lookup == nil {
			continue
		}
		value, ok, err := level.Lookup()
		if err != nil {
			return Match[T]{}, err
		}
		if ok {
			return Match[T]{Value: value, Level: level.Name, Found: true}, nil
		}
	}
	return Match[T]{}, nil
}

// Static is a level that always matches when set is true.
func Static[T any](name string, value T, set bool) Level[T] {
	return Level[T]{
		Name: name,
		Lookup: func() (T, bool, error) {
			return value, set, nil
		},
	}
}
