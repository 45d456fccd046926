package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// flagReader reads a run of flags and keeps the first lookup error, so
// a command checks once after reading everything it needs.
type flagReader struct {
	set *pflag.FlagSet
	err error
}

func readFlags(set *pflag.FlagSet) *flagReader { return &flagReader{set: set} }

func (r *flagReader) fail(name string, err error) {
	if r.err == nil && err != nil {
		r.err = fmt.Errorf("--%s: %w", name, err)
	}
}

func (r *flagReader) String(name string) string {
	v, err := r.set.GetString(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Bool(name string) bool {
	v, err := r.set.GetBool(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Int(name string) int {
	v, err := r.set.GetInt(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Duration(name string) time.Duration {
	v, err := r.set.GetDuration(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Err() error { return r.err }
