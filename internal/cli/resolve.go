package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwliu/focusboard/internal/domain"
)

// resolveTaskID expands a full ID or unique ID prefix to the task's full ID.
// An argument matching nothing is returned unchanged: the store treats
// unknown IDs as silent no-ops and the command reports that. Ambiguous
// prefixes are an error.
func resolveTaskID(ctx context.Context, app *App, key domain.BoardKey, arg string) (string, error) {
	state, err := app.Boards.Board(ctx, key)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, lid := range domain.Lists {
		for _, t := range state.List(lid) {
			if t.ID == arg {
				return arg, nil
			}
			if strings.HasPrefix(t.ID, arg) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return arg, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous task ID %q matches %d tasks", arg, len(matches))
	}
}
