//go:build !windows && !linux && !darwin

package paste

func NewInjector() (Injector, error) {
	return nil, ErrUnsupported
}
