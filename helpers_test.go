package jsonassert_test

import (
	"fmt"
	"strings"
)

// recorder is a TestingT fake that records failures instead of failing the test.
type recorder struct {
	errors  []string
	logs    []string
	stopped bool
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Logf(format string, args ...any) {
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func (r *recorder) Helper() {}

func (r *recorder) FailNow() { r.stopped = true }

func (r *recorder) failed() bool { return len(r.errors) > 0 }

func (r *recorder) String() string { return strings.Join(r.errors, "\n") }
