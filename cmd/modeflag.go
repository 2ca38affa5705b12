package cmd

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomo/internal/domain"
)

// resolveMode parses a --mode value. An empty value means focus. Unknown
// values get the closest known mode as a hint.
func resolveMode(s string) (domain.Mode, error) {
	if strings.TrimSpace(s) == "" {
		return domain.ModeFocus, nil
	}
	m, err := domain.ParseMode(s)
	if err == nil {
		return m, nil
	}

	names := modeNames()
	if matches := fuzzy.Find(strings.ToLower(strings.TrimSpace(s)), names); len(matches) > 0 {
		return "", fmt.Errorf("%w (did you mean %q?)", err, matches[0].Str)
	}
	return "", fmt.Errorf("%w (valid modes: %s)", err, strings.Join(names, ", "))
}

func modeNames() []string {
	modes := domain.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}
