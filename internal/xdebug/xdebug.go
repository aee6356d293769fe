//go:build gocontainer_debug

// Package xdebug is a build-tagged trace logger for the engines, modeled
// on the teacher's internal/debug: a no-op stub on the default build
// (see nodbg.go) so release builds pay nothing, goroutine-tagged and
// regexp-filterable by package/op when the gocontainer_debug tag is
// set.
package xdebug

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/timandy/routine"

	"github.com/flier/gocontainer/internal/xflag"
)

// Enabled is true when the gocontainer_debug build tag is set.
const Enabled = true

var filterPattern = xflag.Func("gocontainer.filter", "regexp to filter xdebug trace logs by", regexp.Compile)

var tls = routine.NewThreadLocal[testingTB]()

// testingTB is the subset of testing.TB xdebug needs, kept narrow so
// this package does not import "testing" outside of tests.
type testingTB interface {
	Log(args ...any)
}

// WithTB routes Log output through t.Log instead of stderr for the
// duration of a test; callers defer the returned restore func.
func WithTB(t testingTB) func() {
	prev := tls.Get()
	tls.Set(t)
	return func() { tls.Set(prev) }
}

// Log prints one trace line for a rotation/repair/insert/remove/rebuild
// boundary, tagged with the calling package, file, line, and goroutine
// id. Lines are dropped when -gocontainer.filter is set and the line
// fails to match.
func Log(op string, format string, args ...any) {
	skip := 1
again:
	pc, file, line, _ := runtime.Caller(skip)
	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	name = name[strings.LastIndex(name, ".")+1:]
	if strings.HasPrefix(name, "Log") {
		skip++
		goto again
	}

	pkg := fn.Name()
	pkg = strings.TrimPrefix(pkg, "github.com/flier/gocontainer/")
	if i := strings.Index(pkg, "."); i >= 0 {
		pkg = pkg[:i]
	}
	file = filepath.Base(file)

	buf := new(strings.Builder)
	_, _ = fmt.Fprintf(buf, "%s/%s:%d [g%04d] %s: ", pkg, file, line, routine.Goid(), op)
	_, _ = fmt.Fprintf(buf, format, args...)

	if *filterPattern != nil && !(*filterPattern).MatchString(buf.String()) {
		return
	}

	if t := tls.Get(); t != nil {
		t.Log(buf.String())
		return
	}

	_, _ = buf.WriteString("\n")
	_, _ = os.Stderr.WriteString(buf.String())
}
