// Package syntax implements the grammar parser and AST for the shell
// language fragment spec.md §3.1 and §4.2 describe: sequential/boolean
// lists, pipelines, simple commands with redirections, if/for
// compound commands, word expansion primitives, and the arithmetic
// sub-language. It is grounded on mvdan.cc/sh/v3's syntax package, trimmed
// to the grammar spec.md reserves (no case/while/until/brace
// groups/function definitions). Those words are not keywords here: they
// are neither recognized nor rejected, and parse as ordinary command words.
package syntax

// Pos is a 1-based byte offset into the source text, used for parse-error
// spans. It is not part of spec.md's data model; it is purely an
// implementation aid, grounded on syntax.Pos in the teacher.
type Pos int

// Node is the common interface of every AST node.
type Node interface {
	Pos() Pos
	End() Pos
}

// SequentialList is the top-level AST produced by parsing a complete
// command (spec.md §3.1).
type SequentialList struct {
	Items []*SequentialListItem
}

func (l *SequentialList) Pos() Pos {
	if len(l.Items) == 0 {
		return 0
	}
	return l.Items[0].Pos()
}
func (l *SequentialList) End() Pos {
	if len(l.Items) == 0 {
		return 0
	}
	return l.Items[len(l.Items)-1].End()
}

// SequentialListItem pairs a Sequence with whether it runs asynchronously
// (trailing `&`).
type SequentialListItem struct {
	IsAsync  bool
	Sequence Sequence
	EndPos   Pos // position just past the separator (';'/'&'), or Sequence.End()
}

func (i *SequentialListItem) Pos() Pos { return i.Sequence.Pos() }
func (i *SequentialListItem) End() Pos { return i.EndPos }

// Sequence is one of ShellVar, Pipeline, or BooleanList (spec.md §3.1).
type Sequence interface {
	Node
	sequenceNode()
}

func (*ShellVarSeq) sequenceNode()   {}
func (*Pipeline) sequenceNode()      {}
func (*BooleanList) sequenceNode()   {}

// ShellVarSeq is a bare `NAME=value` assignment sequence (affects shell
// vars only — it is not a command).
type ShellVarSeq struct {
	Var EnvVar
}

func (s *ShellVarSeq) Pos() Pos { return s.Var.Pos() }
func (s *ShellVarSeq) End() Pos { return s.Var.End() }

// BoolOp is the operator of a BooleanList.
type BoolOp int

const (
	And BoolOp = iota
	Or
)

// BooleanList represents `current && next` / `current || next`,
// right-associative (spec.md §3.1).
type BooleanList struct {
	Current Sequence
	Op      BoolOp
	Next    Sequence
}

func (b *BooleanList) Pos() Pos { return b.Current.Pos() }
func (b *BooleanList) End() Pos { return b.Next.End() }

// Pipeline represents `! cmd1 | cmd2 | ...`.
type Pipeline struct {
	Bang   Pos // position of '!' if Negated, else 0
	Negated bool
	Inner  PipelineInner
}

func (p *Pipeline) Pos() Pos {
	if p.Negated {
		return p.Bang
	}
	return p.Inner.Pos()
}
func (p *Pipeline) End() Pos { return p.Inner.End() }

// PipelineInner is either a single Command or a PipeSequence.
type PipelineInner interface {
	Node
	pipelineInnerNode()
}

func (*Command) pipelineInnerNode()     {}
func (*PipeSequence) pipelineInnerNode() {}

// PipeOp distinguishes `|` from `|&`.
type PipeOp int

const (
	Stdout PipeOp = iota
	StdoutStderr
)

// PipeSequence represents `current | next` (or `|&`), right-recursive.
type PipeSequence struct {
	Current *Command
	Op      PipeOp
	Next    PipelineInner
}

func (p *PipeSequence) Pos() Pos { return p.Current.Pos() }
func (p *PipeSequence) End() Pos { return p.Next.End() }

// Command wraps a CommandInner plus its optional redirection.
type Command struct {
	Inner    CommandInner
	Redirect *Redirect
	StartPos Pos
	EndPos   Pos
}

func (c *Command) Pos() Pos { return c.StartPos }
func (c *Command) End() Pos { return c.EndPos }

// CommandInner is one of Simple, Subshell, If, For, ArithmeticExpression.
type CommandInner interface {
	Node
	commandInnerNode()
}

func (*SimpleCommand) commandInnerNode()         {}
func (*Subshell) commandInnerNode()              {}
func (*IfClause) commandInnerNode()              {}
func (*ForLoop) commandInnerNode()                {}
func (*ArithmeticExpression) commandInnerNode()   {}

// SimpleCommand is a command name, its arguments, and any leading
// per-command env var overrides (spec.md §3.1).
type SimpleCommand struct {
	EnvVars  []EnvVar
	Args     []Word
	StartPos Pos
	EndPos   Pos
}

func (s *SimpleCommand) Pos() Pos { return s.StartPos }
func (s *SimpleCommand) End() Pos { return s.EndPos }

// Subshell is `( list )`: the inner list runs against a cloned state whose
// changes are discarded.
type Subshell struct {
	Lparen, Rparen Pos
	List           *SequentialList
}

func (s *Subshell) Pos() Pos { return s.Lparen }
func (s *Subshell) End() Pos { return s.Rparen + 1 }

// IfClause is `if COND; then BODY; [elif ...] [else ...]; fi`.
type IfClause struct {
	IfPos, FiPos Pos
	Condition    *Condition
	Then         *SequentialList
	ElsePart     ElsePart // nil if absent
}

func (c *IfClause) Pos() Pos { return c.IfPos }
func (c *IfClause) End() Pos { return c.FiPos + 2 }

// ElsePart is either an ElifClause or an ElseClause.
type ElsePart interface {
	Node
	elsePartNode()
}

func (*ElifClause) elsePartNode() {}
func (*ElseClause) elsePartNode() {}

// ElifClause is `elif COND; then BODY; ...`, itself shaped like an
// IfClause's tail so it can chain.
type ElifClause struct {
	Clause *IfClause
}

func (e *ElifClause) Pos() Pos { return e.Clause.Pos() }
func (e *ElifClause) End() Pos { return e.Clause.End() }

// ElseClause is the trailing `else BODY`.
type ElseClause struct {
	ElsePos Pos
	Body    *SequentialList
}

func (e *ElseClause) Pos() Pos { return e.ElsePos }
func (e *ElseClause) End() Pos { return e.Body.End() }

// ForLoop is `for NAME in WORDS; do BODY; done`.
type ForLoop struct {
	ForPos, DonePos Pos
	VarName         string
	Wordlist        []Word
	Body            *SequentialList
}

func (f *ForLoop) Pos() Pos { return f.ForPos }
func (f *ForLoop) End() Pos { return f.DonePos + 4 }

// ArithmeticExpression is a standalone `$(( expr ))` used as a command
// (its exit status is 0 if the value is non-zero, 1 otherwise — spec.md
// §4.8).
type ArithmeticExpression struct {
	Left, Right Pos
	X           *Arithmetic
}

func (a *ArithmeticExpression) Pos() Pos { return a.Left }
func (a *ArithmeticExpression) End() Pos { return a.Right + 2 }

// Condition wraps a binary or unary test (spec.md §3.1, the
// `[[ ... ]]`-style condition used by IfClause).
type Condition struct {
	Binary *BinaryTest
	Unary  *UnaryTest
	Lbrack, Rbrack Pos
}

func (c *Condition) Pos() Pos { return c.Lbrack }
func (c *Condition) End() Pos { return c.Rbrack + 2 }

// BinaryOp enumerates the condition binary operators.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// BinaryTest is `left OP right` inside a Condition.
type BinaryTest struct {
	Left  Word
	Op    BinaryOp
	Right Word
}

func (b *BinaryTest) Pos() Pos { return b.Left.Pos() }
func (b *BinaryTest) End() Pos { return b.Right.End() }

// UnaryOp enumerates the file/string/variable test operators.
type UnaryOp int

const (
	TestFileExists     UnaryOp = iota // -e
	TestRegularFile                   // -f
	TestDirectory                     // -d
	TestSymlink                       // -L / -h
	TestReadable                      // -r
	TestWritable                      // -w
	TestExecutable                    // -x
	TestNonEmptyFile                  // -s
	TestStringEmpty                   // -z
	TestStringNonEmpty                // -n
	TestVarSet                        // -v
	TestNone                          // no operator, e.g. `[[ $X ]]`
)

// UnaryTest is `[!]OP right` or bare `right`, inside a Condition.
type UnaryTest struct {
	Op    UnaryOp
	HasOp bool
	Right Word
}

func (u *UnaryTest) Pos() Pos { return u.Right.Pos() }
func (u *UnaryTest) End() Pos { return u.Right.End() }

// EnvVar is `NAME=VALUE`.
type EnvVar struct {
	Name     string
	Value    Word
	StartPos Pos
}

func (e *EnvVar) Pos() Pos { return e.StartPos }
func (e *EnvVar) End() Pos { return e.Value.End() }

// Word is an ordered sequence of WordPart.
type Word struct {
	Parts []WordPart
}

// NewWordText builds Word::new_word(t): a single unquoted Text part.
func NewWordText(t string) Word {
	return Word{Parts: []WordPart{&Text{Value: t}}}
}

// NewWordString builds Word::new_string(t): a double-quoted literal.
func NewWordString(t string) Word {
	return Word{Parts: []WordPart{&Quoted{Parts: []WordPart{&Text{Value: t}}}}}
}

func (w Word) Pos() Pos {
	if len(w.Parts) == 0 {
		return 0
	}
	return w.Parts[0].Pos()
}
func (w Word) End() Pos {
	if len(w.Parts) == 0 {
		return 0
	}
	return w.Parts[len(w.Parts)-1].End()
}

// WordPart is one variant of a Word's contents.
type WordPart interface {
	Node
	wordPartNode()
}

func (*Text) wordPartNode()       {}
func (*Variable) wordPartNode()   {}
func (*CmdSubst) wordPartNode()   {}
func (*Quoted) wordPartNode()     {}
func (*Tilde) wordPartNode()      {}
func (*Arithmetic) wordPartNode() {}
func (*ExitStatus) wordPartNode() {}

// Text is a run of literal, unquoted characters.
type Text struct {
	Value    string
	StartPos Pos
}

func (t *Text) Pos() Pos { return t.StartPos }
func (t *Text) End() Pos { return t.StartPos + Pos(len(t.Value)) }

// Variable is `$NAME`, `${NAME}`, or `${NAME<modifier>}`.
type Variable struct {
	Name     string
	Modifier VariableModifier // nil if absent
	StartPos Pos
	EndPos   Pos
}

func (v *Variable) Pos() Pos { return v.StartPos }
func (v *Variable) End() Pos { return v.EndPos }

// VariableModifier is one of Substring, DefaultValue, AssignDefault,
// AlternateValue (spec.md §3.1).
type VariableModifier interface {
	variableModifierNode()
}

func (*Substring) variableModifierNode()     {}
func (*DefaultValue) variableModifierNode()  {}
func (*AssignDefault) variableModifierNode() {}
func (*AlternateValue) variableModifierNode() {}

// Substring is `${V:begin[:length]}`.
type Substring struct {
	Begin  Word
	Length *Word // nil if absent
}

// DefaultValue is `${V:-X}`.
type DefaultValue struct{ X Word }

// AssignDefault is `${V:=X}`.
type AssignDefault struct{ X Word }

// AlternateValue is `${V:+X}`.
type AlternateValue struct{ X Word }

// CmdSubst is `$( list )` command substitution.
type CmdSubst struct {
	Left, Right Pos
	List        *SequentialList
}

func (c *CmdSubst) Pos() Pos { return c.Left }
func (c *CmdSubst) End() Pos { return c.Right + 1 }

// Quoted is a double-quoted sequence of WordPart; single-quoted strings
// are lexed directly into a Text part since they are always literal.
type Quoted struct {
	Parts    []WordPart
	StartPos Pos
	EndPos   Pos
}

func (q *Quoted) Pos() Pos { return q.StartPos }
func (q *Quoted) End() Pos { return q.EndPos }

// Tilde is `~` or `~user`.
type Tilde struct {
	User     string // empty if plain `~`
	StartPos Pos
}

func (t *Tilde) Pos() Pos { return t.StartPos }
func (t *Tilde) End() Pos {
	n := 1
	if t.User != "" {
		n += len(t.User)
	}
	return t.StartPos + Pos(n)
}

// Arithmetic is `$((expr))`, also reused for ArithmeticExpression's X.
type Arithmetic struct {
	Left, Right Pos
	Parts       []ArithmeticPart
}

func (a *Arithmetic) Pos() Pos { return a.Left }
func (a *Arithmetic) End() Pos { return a.Right + 2 }

// ExitStatus is `$?`.
type ExitStatus struct {
	StartPos Pos
}

func (e *ExitStatus) Pos() Pos { return e.StartPos }
func (e *ExitStatus) End() Pos { return e.StartPos + 2 }

// Redirect is an I/O redirection attached to a Command.
type Redirect struct {
	MaybeFd *RedirectFd
	OpPos   Pos
	Op      RedirectOp
	IoFile  IoFile
}

func (r *Redirect) Pos() Pos {
	if r.MaybeFd != nil {
		return r.OpPos
	}
	return r.OpPos
}
func (r *Redirect) End() Pos { return r.IoFile.End() }

// RedirectFd is the optional fd prefix of a redirect: either a literal fd
// number or the `&` (StdoutStderr) prefix of `&>`/`&>>`.
type RedirectFd struct {
	Fd             uint32
	IsStdoutStderr bool
}

// RedirectOp is the kind of redirection.
type RedirectOp interface {
	redirectOpNode()
}

func (RedirectInput) redirectOpNode()  {}
func (RedirectOutput) redirectOpNode() {}

// RedirectInput is `<` (or `<&n`, whose IoFile becomes Fd(n)).
type RedirectInput struct{}

// OutputMode distinguishes `>` (truncate) from `>>` (append).
type OutputMode int

const (
	Overwrite OutputMode = iota
	Append
)

// RedirectOutput is `>`/`>>` (or `>&n`).
type RedirectOutput struct{ Mode OutputMode }

// IoFile is the target of a Redirect: either a Word or a literal fd
// number (from `<&n`/`>&n` duplication).
type IoFile interface {
	Node
	ioFileNode()
}

func (*IoFileWord) ioFileNode() {}
func (*IoFileFd) ioFileNode()   {}

// IoFileWord is a Word naming a file path.
type IoFileWord struct{ W Word }

func (w *IoFileWord) Pos() Pos { return w.W.Pos() }
func (w *IoFileWord) End() Pos { return w.W.End() }

// IoFileFd is a literal target fd, from `<&n`/`>&n`.
type IoFileFd struct {
	Fd       uint32
	StartPos Pos
}

func (f *IoFileFd) Pos() Pos { return f.StartPos }
func (f *IoFileFd) End() Pos { return f.StartPos + 1 }

// ArithmeticPart is one comma-separated element of an Arithmetic
// expression (spec.md §3.1).
type ArithmeticPart interface {
	Node
	arithmeticPartNode()
}

func (*ParenthesesExpr) arithmeticPartNode()      {}
func (*VariableAssignment) arithmeticPartNode()   {}
func (*TripleConditionalExpr) arithmeticPartNode() {}
func (*BinaryArithmeticExpr) arithmeticPartNode() {}
func (*BinaryConditionalExpr) arithmeticPartNode() {}
func (*UnaryArithmeticExpr) arithmeticPartNode()  {}
func (*PostArithmeticExpr) arithmeticPartNode()   {}
func (*ArithVariable) arithmeticPartNode()        {}
func (*ArithNumber) arithmeticPartNode()          {}

type ParenthesesExpr struct {
	Lparen, Rparen Pos
	X              ArithmeticPart
}

func (p *ParenthesesExpr) Pos() Pos { return p.Lparen }
func (p *ParenthesesExpr) End() Pos { return p.Rparen + 1 }

// AssignmentOp enumerates `=`, `*=`, `/=`, `%=`, `+=`, `-=`, `<<=`, `>>=`,
// `&=`, `^=`, `|=`.
type AssignmentOp int

const (
	Assign AssignmentOp = iota
	MulAssign
	QuoAssign
	RemAssign
	AddAssign
	SubAssign
	ShlAssign
	ShrAssign
	AndAssign
	XorAssign
	OrAssign
)

type VariableAssignment struct {
	Name     string
	Op       AssignmentOp
	Value    ArithmeticPart
	StartPos Pos
}

func (v *VariableAssignment) Pos() Pos { return v.StartPos }
func (v *VariableAssignment) End() Pos { return v.Value.End() }

// TripleConditionalExpr is `cond ? true_expr : false_expr`.
type TripleConditionalExpr struct {
	Cond, True, False ArithmeticPart
}

func (t *TripleConditionalExpr) Pos() Pos { return t.Cond.Pos() }
func (t *TripleConditionalExpr) End() Pos { return t.False.End() }

// BinaryArithmeticOp enumerates +, -, *, /, %, **, <<, >>, &, ^, |, &&, ||.
type BinaryArithmeticOp int

const (
	OpAdd BinaryArithmeticOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpShl
	OpShr
	OpBitAnd
	OpBitXor
	OpBitOr
	OpLogAnd
	OpLogOr
)

type BinaryArithmeticExpr struct {
	X, Y ArithmeticPart
	Op   BinaryArithmeticOp
}

func (b *BinaryArithmeticExpr) Pos() Pos { return b.X.Pos() }
func (b *BinaryArithmeticExpr) End() Pos { return b.Y.End() }

// BinaryConditionalOp enumerates the comparison operators used inside
// arithmetic (==, !=, <, <=, >, >=).
type BinaryConditionalOp int

const (
	CondEq BinaryConditionalOp = iota
	CondNe
	CondLt
	CondLe
	CondGt
	CondGe
)

type BinaryConditionalExpr struct {
	X, Y ArithmeticPart
	Op   BinaryConditionalOp
}

func (b *BinaryConditionalExpr) Pos() Pos { return b.X.Pos() }
func (b *BinaryConditionalExpr) End() Pos { return b.Y.End() }

// UnaryArithmeticOp enumerates +, -, !, ~.
type UnaryArithmeticOp int

const (
	UnaryPlus UnaryArithmeticOp = iota
	UnaryMinus
	UnaryNot
	UnaryBitNeg
)

type UnaryArithmeticExpr struct {
	Op       UnaryArithmeticOp
	X        ArithmeticPart
	StartPos Pos
}

func (u *UnaryArithmeticExpr) Pos() Pos { return u.StartPos }
func (u *UnaryArithmeticExpr) End() Pos { return u.X.End() }

// PostArithmeticOp enumerates post-increment/decrement.
type PostArithmeticOp int

const (
	PostInc PostArithmeticOp = iota
	PostDec
)

type PostArithmeticExpr struct {
	X      ArithmeticPart
	Op     PostArithmeticOp
	EndPos Pos
}

func (p *PostArithmeticExpr) Pos() Pos { return p.X.Pos() }
func (p *PostArithmeticExpr) End() Pos { return p.EndPos }

type ArithVariable struct {
	Name     string
	StartPos Pos
}

func (a *ArithVariable) Pos() Pos { return a.StartPos }
func (a *ArithVariable) End() Pos { return a.StartPos + Pos(len(a.Name)) }

type ArithNumber struct {
	Text     string
	StartPos Pos
}

func (a *ArithNumber) Pos() Pos { return a.StartPos }
func (a *ArithNumber) End() Pos { return a.StartPos + Pos(len(a.Text)) }
