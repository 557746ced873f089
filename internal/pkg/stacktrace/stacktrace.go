package stacktrace

import "strings"

// InternalPaths picks the "internal/...go:line" frames out of a debug.Stack
// dump, dropping runtime and third-party frames.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		line = strings.TrimSpace(line)

		_, rest, ok := strings.Cut(line, "/internal/")
		if !ok {
			continue
		}
		file, _, _ := strings.Cut(rest, " ")
		if !strings.Contains(file, ".go:") {
			continue
		}
		paths = append(paths, "internal/"+file)
	}
	return paths
}
