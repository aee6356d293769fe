//go:build !gocontainer_debug

package xdebug

const Enabled = false

func Log(string, string, ...any) {}

type testingTB interface {
	Log(args ...any)
}

func WithTB(testingTB) func() { return func() {} }
