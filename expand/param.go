package expand

import (
	"context"
	"strconv"
	"strings"

	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// applyModifier resolves a variable's modifier form, grounded on the
// teacher's expand/param.go. name/value/set describe the variable before
// the modifier is applied.
func applyModifier(ctx context.Context, ex Executor, st *state.State, name, value string, set bool, mod syntax.VariableModifier) (string, []state.EnvChange, error) {
	switch m := mod.(type) {
	case *syntax.Substring:
		return applySubstring(ctx, ex, st, value, m)
	case *syntax.DefaultValue:
		if set && value != "" {
			return value, nil, nil
		}
		return WordOne(ctx, ex, st, m.X)
	case *syntax.AssignDefault:
		if set && value != "" {
			return value, nil, nil
		}
		replacement, changes, err := WordOne(ctx, ex, st, m.X)
		if err != nil {
			return "", nil, err
		}
		change := state.SetShellVar{Name: name, Value: replacement}
		st.ApplyChange(change)
		return replacement, append(changes, change), nil
	case *syntax.AlternateValue:
		if !set || value == "" {
			return "", nil, nil
		}
		return WordOne(ctx, ex, st, m.X)
	default:
		return value, nil, nil
	}
}

// applySubstring implements ${V:begin[:length]}, with negative offsets
// counting from the end of the string (spec.md §4.4, the substring
// modifier) and a leading space before a negative begin tolerated by the
// lexer per the Open Question decision in SPEC_FULL.md §9.
func applySubstring(ctx context.Context, ex Executor, st *state.State, value string, m *syntax.Substring) (string, []state.EnvChange, error) {
	beginStr, changes, err := WordOne(ctx, ex, st, m.Begin)
	if err != nil {
		return "", nil, err
	}
	begin, err := strconv.Atoi(strings.TrimSpace(beginStr))
	if err != nil {
		return "", nil, err
	}
	runes := []rune(value)
	n := len(runes)
	start := begin
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	end := n
	if m.Length != nil {
		lengthStr, lChanges, err := WordOne(ctx, ex, st, *m.Length)
		if err != nil {
			return "", nil, err
		}
		changes = append(changes, lChanges...)
		length, err := strconv.Atoi(strings.TrimSpace(lengthStr))
		if err != nil {
			return "", nil, err
		}
		if length < 0 {
			end = n + length
		} else {
			end = start + length
		}
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return string(runes[start:end]), changes, nil
}
