// Package expand implements word expansion (spec.md §4.4): variable
// substitution with its modifiers, command substitution, arithmetic
// substitution, tilde expansion, $?, the literal-vs-quoted distinction
// that governs field splitting, and globbing. It is grounded on the
// teacher's expand package (expand.go, param.go, arith.go), generalized to
// operate over state.State / syntax.Word instead of the teacher's own
// Runner-bound Word type.
package expand

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shellrun/shellrun/state"
	"github.com/shellrun/shellrun/syntax"
)

// Executor lets expand run command substitutions without importing interp
// (which itself imports expand), mirroring the callback field the teacher
// threads through expand.Config for CmdSubst evaluation.
type Executor interface {
	// RunCaptured executes list against a clone of st (so its env changes
	// are discarded, per spec.md's subshell isolation rule) and returns its
	// stdout with exactly one trailing newline (bare or CRLF) removed and
	// any remaining newlines turned into spaces, matching command
	// substitution semantics.
	RunCaptured(ctx context.Context, st *state.State, list *syntax.SequentialList) (string, error)
}

// field is one expanded chunk of a word together with whether it came
// from quoted text (and so is exempt from field splitting and globbing).
type field struct {
	text   string
	quoted bool
}

// Word expands w into the shell words it yields after field splitting and
// globbing (spec.md §4.4 steps 1-10). An EnvVar's Value, a for-loop word,
// and a SimpleCommand argument all use this same entry point. Any
// `${V:=X}`-style assignment default encountered along the way is applied
// to st immediately and also returned in changes, so a caller building a
// change-set (subshell, command substitution) can decide whether to keep
// or discard it.
func Word(ctx context.Context, ex Executor, st *state.State, w syntax.Word) (result []string, changes []state.EnvChange, err error) {
	fields, changes, err := expandParts(ctx, ex, st, w.Parts)
	if err != nil {
		return nil, nil, err
	}
	split := splitFields(fields)
	var out []string
	for _, f := range split {
		if f.quoted {
			out = append(out, f.text)
			continue
		}
		matches, err := Glob(f.text, st.Cwd())
		if err != nil {
			return nil, nil, err
		}
		out = append(out, matches...)
	}
	return out, changes, nil
}

// WordOne expands w and joins the result back into a single string,
// without re-splitting, for contexts spec.md treats as a single value:
// the right-hand side of an EnvVar assignment, a variable modifier's
// replacement word, a redirection target.
func WordOne(ctx context.Context, ex Executor, st *state.State, w syntax.Word) (result string, changes []state.EnvChange, err error) {
	fields, changes, err := expandParts(ctx, ex, st, w.Parts)
	if err != nil {
		return "", nil, err
	}
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(f.text)
	}
	return sb.String(), changes, nil
}

func expandParts(ctx context.Context, ex Executor, st *state.State, parts []syntax.WordPart) ([]field, []state.EnvChange, error) {
	var out []field
	var changes []state.EnvChange
	for _, part := range parts {
		fs, cs, err := expandPart(ctx, ex, st, part, false)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, fs...)
		changes = append(changes, cs...)
	}
	return out, changes, nil
}

func expandPart(ctx context.Context, ex Executor, st *state.State, part syntax.WordPart, quoted bool) ([]field, []state.EnvChange, error) {
	switch p := part.(type) {
	case *syntax.Text:
		return []field{{text: p.Value, quoted: quoted}}, nil, nil
	case *syntax.Quoted:
		var out []field
		var changes []state.EnvChange
		for _, inner := range p.Parts {
			fs, cs, err := expandPart(ctx, ex, st, inner, true)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, fs...)
			changes = append(changes, cs...)
		}
		return out, changes, nil
	case *syntax.Variable:
		text, changes, err := expandVariable(ctx, ex, st, p)
		if err != nil {
			return nil, nil, err
		}
		return []field{{text: text, quoted: quoted}}, changes, nil
	case *syntax.ExitStatus:
		return []field{{text: strconv.Itoa(st.LastCommandExitCode), quoted: quoted}}, nil, nil
	case *syntax.Tilde:
		return []field{{text: expandTilde(st, p), quoted: quoted}}, nil, nil
	case *syntax.CmdSubst:
		out, err := ex.RunCaptured(ctx, st, p.List)
		if err != nil {
			return nil, nil, err
		}
		return []field{{text: out, quoted: quoted}}, nil, nil
	case *syntax.Arithmetic:
		val, changes, err := EvalArithmetic(st, p)
		if err != nil {
			return nil, nil, err
		}
		return []field{{text: val.String(), quoted: quoted}}, changes, nil
	default:
		return nil, nil, fmt.Errorf("expand: unsupported word part %T", part)
	}
}

func expandTilde(st *state.State, t *syntax.Tilde) string {
	if t.User != "" {
		// Looking up another user's home directory isn't modeled; spec.md
		// scopes tilde expansion to the invoking user's own HOME.
		return "~" + t.User
	}
	if home, ok := st.GetVar("HOME"); ok {
		return home
	}
	return "~"
}

func expandVariable(ctx context.Context, ex Executor, st *state.State, v *syntax.Variable) (string, []state.EnvChange, error) {
	value, set := st.GetVar(v.Name)
	if v.Modifier == nil {
		return value, nil, nil
	}
	return applyModifier(ctx, ex, st, v.Name, value, set, v.Modifier)
}
