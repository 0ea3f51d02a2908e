package exports

import (
	"github.com/reglet-dev/vecbridge/bridge"
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
	"github.com/reglet-dev/vecbridge/protect"
	"github.com/reglet-dev/vecbridge/vector"
)

// Func is the inner form of an entry point.
type Func func(host ports.Host, x entities.Handle) (entities.Handle, error)

// Wrap returns the boundary form of fn: failures and panics come back as a
// tagged handle.
func Wrap(fn Func, opts ...bridge.Option) func(host ports.Host, x entities.Handle) entities.Handle {
	return func(host ports.Host, x entities.Handle) entities.Handle {
		return bridge.New(host, opts...).Run(func() (entities.Handle, error) {
			return fn(host, x)
		})
	}
}

// ToUpper returns a new text vector with every element upper-cased.
func ToUpper(host ports.Host, x entities.Handle) (entities.Handle, error) {
	in, err := vector.NewTextView(host, x)
	if err != nil {
		return entities.NullHandle, err
	}

	scope := protect.NewScope(host)
	defer scope.Release()

	out := scope.Protect(host.AllocVector(entities.TypeText, in.Len()))
	for i := range in.Len() {
		s, err := in.At(i)
		if err != nil {
			return entities.NullHandle, err
		}
		// MakeChar may collect; out is protected and the new char is
		// reachable from it before the next allocation.
		host.SetStringElt(out, i, host.MakeChar([]byte(UpperText(s)), entities.EncodingUTF8))
	}
	return out, nil
}

// TimesTwoInteger returns a new integer vector with every element doubled.
func TimesTwoInteger(host ports.Host, x entities.Handle) (entities.Handle, error) {
	in, err := vector.NewIntegerView(host, x)
	if err != nil {
		return entities.NullHandle, err
	}

	scope := protect.NewScope(host)
	defer scope.Release()

	out := scope.Protect(host.AllocVector(entities.TypeInteger, in.Len()))
	for i, v := range in.All() {
		host.SetIntegerElt(out, i, DoubleInteger(v))
	}
	return out, nil
}

// TimesTwoReal returns a new real vector with every element doubled.
func TimesTwoReal(host ports.Host, x entities.Handle) (entities.Handle, error) {
	in, err := vector.NewRealView(host, x)
	if err != nil {
		return entities.NullHandle, err
	}

	scope := protect.NewScope(host)
	defer scope.Release()

	out := scope.Protect(host.AllocVector(entities.TypeReal, in.Len()))
	for i, v := range in.All() {
		host.SetRealElt(out, i, DoubleReal(v))
	}
	return out, nil
}
