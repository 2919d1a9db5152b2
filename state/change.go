package state

// EnvChange is a single deferred mutation produced by evaluating part of
// the AST. Evaluators never mutate a State directly; they return a list of
// EnvChange values that the caller applies (or discards, for subshells and
// command substitutions). See original_source's `EnvChange` enum, which
// this type mirrors one-to-one.
type EnvChange interface {
	isEnvChange()
}

// SetEnvVar represents `export NAME=VALUE` or an assignment to a name that
// is already exported.
type SetEnvVar struct {
	Name  string
	Value string
}

// SetShellVar represents a bare `NAME=VALUE` assignment.
type SetShellVar struct {
	Name  string
	Value string
}

// UnsetVar represents `unset NAME`.
type UnsetVar struct{ Name string }

// AliasCommand represents `alias NAME=VALUE`. Value is split into an
// ordered token list, matching original_source's
// `cmd.split_whitespace().collect()`.
type AliasCommand struct {
	Name  string
	Value string
}

// UnAliasCommand represents `unalias NAME`.
type UnAliasCommand struct{ Name string }

// Cd represents a change of working directory.
type Cd struct{ Path string }

// SetShellOptions represents `set -e` / `set +e` and friends.
type SetShellOptions struct {
	Option Option
	Value  bool
}

func (SetEnvVar) isEnvChange()       {}
func (SetShellVar) isEnvChange()     {}
func (UnsetVar) isEnvChange()        {}
func (AliasCommand) isEnvChange()    {}
func (UnAliasCommand) isEnvChange()  {}
func (Cd) isEnvChange()              {}
func (SetShellOptions) isEnvChange() {}
