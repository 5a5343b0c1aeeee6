package panicutil

import (
	"github.com/sourcegraph/conc/panics"
)

// Call runs f and returns its error.
// If f panics, the panic is recovered and returned as *panics.ErrRecovered.
// If f calls runtime.Goexit, Call does not return: the goroutine keeps exiting.
func Call(f func() error) (err error) {
	var pc panics.Catcher
	pc.Try(func() {
		err = f()
	})
	if recovered := pc.Recovered(); recovered != nil {
		return recovered.AsError()
	}
	return err
}
