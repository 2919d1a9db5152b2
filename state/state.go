package state

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// State owns everything spec.md §3.2 names: env vars, shell vars, cwd, the
// command registry, the alias table, shell options, the cancellation
// token, the last exit code, and VCS hint fields. It is grounded
// field-for-field on original_source's ShellState.
type State struct {
	envVars   map[string]string
	shellVars map[string]string
	cwd       string

	Commands map[string]Command
	alias    map[string][]string

	Token Token

	// GitRepository etc. are VCS hint fields a REPL prompt can consult;
	// the core updates them but attaches no behavior to them itself.
	GitRepository bool
	GitRoot       string
	GitBranch     string
	LastCommandCd bool

	LastCommandExitCode int

	options map[Option]bool
}

// New builds a State rooted at cwd (which must be absolute) with the given
// initial environment and command registry. ctx becomes the root of the
// shell's cancellation token (spec.md §5); pass context.Background() for a
// top-level invocation.
func New(ctx context.Context, envVars map[string]string, cwd string, commands map[string]Command) *State {
	if !filepath.IsAbs(cwd) {
		panic("state: cwd must be absolute")
	}
	if commands == nil {
		commands = map[string]Command{}
	}
	s := &State{
		envVars:   map[string]string{},
		shellVars: map[string]string{},
		Commands:  commands,
		alias:     map[string][]string{},
		Token:     NewToken(ctx),
		options:   map[Option]bool{},
	}
	for name, value := range envVars {
		s.applyEnvVar(name, value)
	}
	s.SetCwd(cwd)
	return s
}

// Cwd returns the current working directory, always absolute and
// canonical.
func (s *State) Cwd() string { return s.cwd }

// EnvVars returns the exported environment, suitable for handing to a
// spawned process.
func (s *State) EnvVars() map[string]string {
	out := make(map[string]string, len(s.envVars))
	for k, v := range s.envVars {
		out[k] = v
	}
	return out
}

// EnvList returns the exported environment as a NAME=VALUE slice, the
// shape os/exec.Cmd.Env expects.
func (s *State) EnvList() []string {
	out := make([]string, 0, len(s.envVars))
	for k, v := range s.envVars {
		out = append(out, k+"="+v)
	}
	return out
}

func normalizeName(name string) string {
	if runtime.GOOS == "windows" {
		return strings.ToUpper(name)
	}
	return name
}

// GetVar resolves name from env vars first, then shell vars, matching
// original_source's `get_var`.
func (s *State) GetVar(name string) (string, bool) {
	name = normalizeName(name)
	if v, ok := s.envVars[name]; ok {
		return v, true
	}
	if v, ok := s.shellVars[name]; ok {
		return v, true
	}
	return "", false
}

// Alias looks up an alias's replacement token list.
func (s *State) Alias(name string) ([]string, bool) {
	toks, ok := s.alias[name]
	return toks, ok
}

// Option reports whether a shell option is currently set.
func (s *State) Option(o Option) bool { return s.options[o] }

// SetCwd sets the working directory and keeps $PWD in sync, plus
// refreshes the git hint fields, matching original_source's `set_cwd`.
func (s *State) SetCwd(cwd string) {
	s.cwd = cwd
	s.envVars["PWD"] = cwd
	s.refreshGitHints(cwd)
}

func (s *State) refreshGitHints(cwd string) {
	if head, err := os.ReadFile(filepath.Join(cwd, ".git", "HEAD")); err == nil {
		s.GitRepository = true
		s.GitBranch = strings.TrimSpace(string(head))
		s.GitRoot = cwd
		return
	}
	if s.GitRepository && strings.HasPrefix(cwd, s.GitRoot) {
		// Moved within the same repository but not at its root: re-read
		// HEAD at the known root.
		if head, err := os.ReadFile(filepath.Join(s.GitRoot, ".git", "HEAD")); err == nil {
			s.GitBranch = strings.TrimSpace(string(head))
			return
		}
		s.GitRepository = false
		s.GitBranch = ""
		s.GitRoot = ""
		return
	}
	s.GitRepository = false
	s.GitBranch = ""
	s.GitRoot = ""
}

// applyEnvVar sets name=value as an exported variable, re-pointing cwd
// when name is PWD and the path exists, matching original_source's
// `apply_env_var`.
func (s *State) applyEnvVar(name, value string) {
	name = normalizeName(name)
	if name == "PWD" {
		if filepath.IsAbs(value) {
			if resolved, err := filepath.EvalSymlinks(value); err == nil {
				if abs, err := filepath.Abs(resolved); err == nil {
					s.SetCwd(abs)
					return
				}
			}
		}
		return
	}
	delete(s.shellVars, name)
	s.envVars[name] = value
}

// applyShellVar sets a shell-only variable, unless name already exists as
// an exported env var (an exported variable remains exported — spec.md
// §3.2 invariant).
func (s *State) applyShellVar(name, value string) {
	name = normalizeName(name)
	if _, ok := s.envVars[name]; ok {
		s.applyEnvVar(name, value)
		return
	}
	s.shellVars[name] = value
}

func (s *State) unsetVar(name string) {
	name = normalizeName(name)
	delete(s.shellVars, name)
	delete(s.envVars, name)
}

// ApplyChanges applies an ordered EnvChange list to this State in place.
// Subshells and command substitutions run against a Clone and discard
// their resulting changes; top-level sequences apply them here.
func (s *State) ApplyChanges(changes []EnvChange) {
	s.LastCommandCd = false
	for _, c := range changes {
		s.ApplyChange(c)
	}
}

// ApplyChange applies a single EnvChange.
func (s *State) ApplyChange(change EnvChange) {
	switch c := change.(type) {
	case SetEnvVar:
		s.applyEnvVar(c.Name, c.Value)
	case SetShellVar:
		s.applyShellVar(c.Name, c.Value)
	case UnsetVar:
		s.unsetVar(c.Name)
	case Cd:
		s.SetCwd(c.Path)
		s.LastCommandCd = true
	case AliasCommand:
		s.alias[c.Name] = strings.Fields(c.Value)
	case UnAliasCommand:
		delete(s.alias, c.Name)
	case SetShellOptions:
		s.options[c.Option] = c.Value
	}
}

// Clone returns a deep-enough copy of s for use by a subshell or command
// substitution: a scope that may mutate independently, whose resulting
// changes the caller will discard (spec.md §3.3, testable property 3).
func (s *State) Clone() *State {
	clone := &State{
		envVars:             copyMap(s.envVars),
		shellVars:           copyMap(s.shellVars),
		cwd:                 s.cwd,
		Commands:            s.Commands, // shared registry: commands aren't mutated per-scope
		alias:               copyAliasMap(s.alias),
		Token:               s.Token.Child(),
		GitRepository:       s.GitRepository,
		GitRoot:             s.GitRoot,
		GitBranch:           s.GitBranch,
		LastCommandCd:       s.LastCommandCd,
		LastCommandExitCode: s.LastCommandExitCode,
		options:             copyOptions(s.options),
	}
	return clone
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyAliasMap(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func copyOptions(m map[Option]bool) map[Option]bool {
	out := make(map[Option]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
