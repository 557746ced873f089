package stacktrace

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/postlearn/internal/devapi.(*Handler).SendCode(0xc000)
	/src/postlearn/internal/devapi/handler.go:42 +0x1a
net/http.HandlerFunc.ServeHTTP(0x0)
	/usr/local/go/src/net/http/server.go:2220 +0x29
`)

	got := InternalPaths(stack)

	if len(got) != 1 || got[0] != "internal/devapi/handler.go:42" {
		t.Fatalf("paths = %v", got)
	}
}

func TestInternalPathsLiveStack(t *testing.T) {
	got := InternalPaths(debug.Stack())

	found := false
	for _, p := range got {
		if strings.HasPrefix(p, "internal/pkg/stacktrace/stacktrace_test.go:") {
			found = true
		}
	}
	if !found {
		t.Fatalf("paths = %v, want this test file", got)
	}
}
