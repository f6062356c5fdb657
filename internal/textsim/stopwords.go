package textsim

import (
	"embed"
	"log/slog"
	"strings"
	"sync"
)

//go:embed resources/stopwords_en.txt
var resourceFS embed.FS

var (
	stopOnce sync.Once
	stopSet  map[string]struct{}
)

// Stopwords returns the shared stopword set, loaded once per process. If
// the embedded resource cannot be read the set is empty and tokenization
// degrades to punctuation and length filtering alone.
func Stopwords() map[string]struct{} {
	stopOnce.Do(func() {
		stopSet = make(map[string]struct{})
		data, err := resourceFS.ReadFile("resources/stopwords_en.txt")
		if err != nil {
			slog.Warn("stopword list unavailable, falling back to length filtering", "error", err)
			return
		}
		for _, line := range strings.Split(string(data), "\n") {
			w := strings.TrimSpace(line)
			if w == "" || strings.HasPrefix(w, "#") {
				continue
			}
			stopSet[w] = struct{}{}
		}
	})
	return stopSet
}
