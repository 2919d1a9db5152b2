package syntax

import "fmt"

// Parser implements the recursive-descent grammar of spec.md §4.2 over the
// lexer primitives, grounded on the teacher's syntax/parser.go (trimmed to
// the grammar spec.md reserves: no case/while/until, no brace groups, no
// function definitions).
type Parser struct {
	lexer
}

// Parse parses a complete program from src, attributing errors to
// filename.
func Parse(filename string, src []byte) (*SequentialList, error) {
	p := &Parser{lexer: lexer{src: src, filename: filename}}
	return p.parseSequentialListEOF()
}

func (p *Parser) errf(pos Pos, format string, args ...any) error {
	return &ParseError{Filename: p.filename, Start: pos, Text: fmt.Sprintf(format, args...)}
}

// parseSequentialListEOF parses a SequentialList and requires the input be
// fully consumed (aside from trailing blanks/newlines), used both for
// Parse and for embedded command substitutions.
func (p *Parser) parseSequentialListEOF() (*SequentialList, error) {
	list, err := p.parseSequentialList()
	if err != nil {
		return nil, err
	}
	p.skipBlanksAndNewlines()
	if !p.eof() {
		return nil, p.errf(Pos(p.pos+1), "unexpected input after command")
	}
	return list, nil
}

func (p *Parser) parseSequentialList() (*SequentialList, error) {
	list := &SequentialList{}
	p.skipBlanksAndNewlines()
	for {
		p.skipBlanks()
		if p.atListEnd() {
			break
		}
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		item := &SequentialListItem{Sequence: seq, EndPos: seq.End()}
		p.skipBlanks()
		switch {
		case !p.eof() && p.peek() == '&' && p.peekAt(1) != '&':
			p.pos++
			item.IsAsync = true
			item.EndPos = Pos(p.pos)
		case !p.eof() && p.peek() == ';':
			p.pos++
			item.EndPos = Pos(p.pos)
		}
		list.Items = append(list.Items, item)
		p.skipBlanksAndNewlines()
		if p.atListEnd() {
			break
		}
	}
	return list, nil
}

// atListEnd reports whether the cursor sits at a point where a
// SequentialList must stop: end of input or a closing token belonging to
// an enclosing construct.
func (p *Parser) atListEnd() bool {
	if p.eof() {
		return true
	}
	if p.peek() == ')' {
		return true
	}
	if p.atKeyword("then") || p.atKeyword("elif") || p.atKeyword("else") || p.atKeyword("fi") ||
		p.atKeyword("do") || p.atKeyword("done") {
		return true
	}
	return false
}

// atKeyword reports whether the reserved word kw starts at the current
// position and is not merely the prefix of a longer identifier. kw must be
// one of the grammar's reserved words (the keywords table); a typo here is
// a bug in the parser itself, not a user-facing parse error.
func (p *Parser) atKeyword(kw string) bool {
	if _, reserved := keywords[kw]; !reserved {
		panic("syntax: atKeyword called with non-reserved word " + kw)
	}
	if !p.at(kw) {
		return false
	}
	end := p.pos + len(kw)
	if end < len(p.src) && isNameCont(p.src[end]) {
		return false
	}
	return true
}

// parseSequence parses a boolean-list chain (spec.md §3.1: ShellVar |
// Pipeline | BooleanList), right-associative.
func (p *Parser) parseSequence() (Sequence, error) {
	if sv, ok, err := p.tryParseShellVarSeq(); err != nil {
		return nil, err
	} else if ok {
		return sv, nil
	}
	pipe, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	p.skipBlanks()
	var op BoolOp
	switch {
	case p.at("&&"):
		op = And
	case p.at("||"):
		op = Or
	default:
		return pipe, nil
	}
	p.pos += 2
	p.skipBlanksAndNewlines()
	next, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	return &BooleanList{Current: pipe, Op: op, Next: next}, nil
}

// tryParseShellVarSeq recognizes a bare `NAME=value` sequence, i.e. one
// not followed by a command word (spec.md §3.1's ShellVar sequence kind).
func (p *Parser) tryParseShellVarSeq() (*ShellVarSeq, bool, error) {
	save := p.pos
	ev, ok, err := p.tryParseEnvVar()
	if err != nil || !ok {
		p.pos = save
		return nil, false, nil
	}
	p.skipBlanks()
	// If more env-var assignments or a command word follow, this was the
	// assignment-prefix of a SimpleCommand, not a standalone sequence:
	// backtrack and let parsePipeline/parseSimpleCommand handle it.
	if !p.eof() && !isWordBreak(p.peek()) {
		p.pos = save
		return nil, false, nil
	}
	return &ShellVarSeq{Var: ev}, true, nil
}

func (p *Parser) tryParseEnvVar() (EnvVar, bool, error) {
	start := p.pos
	if p.eof() || !isNameStart(p.peek()) {
		return EnvVar{}, false, nil
	}
	s := p.pos
	for !p.eof() && isNameCont(p.peek()) {
		p.pos++
	}
	name := string(p.src[s:p.pos])
	if p.eof() || p.peek() != '=' {
		p.pos = start
		return EnvVar{}, false, nil
	}
	p.pos++ // '='
	val, _, err := p.lexWord()
	if err != nil {
		return EnvVar{}, false, err
	}
	return EnvVar{Name: name, Value: val, StartPos: Pos(start + 1)}, true, nil
}

// parsePipeline parses `[!] command (| | |&) ...`.
func (p *Parser) parsePipeline() (*Pipeline, error) {
	negated := false
	var bang Pos
	if !p.eof() && p.peek() == '!' {
		if p.peekAt(1) == ' ' || p.peekAt(1) == '\t' {
			bang = Pos(p.pos + 1)
			negated = true
			p.pos++
			p.skipBlanks()
		} else if p.peekAt(1) != '\n' && p.peekAt(1) != 0 {
			return nil, p.errf(Pos(p.pos+1), "! must be followed by whitespace; %q looks like a history-expansion event, not pipeline negation", "!"+string(p.peekAt(1)))
		}
	}
	inner, err := p.parsePipelineInner()
	if err != nil {
		return nil, err
	}
	return &Pipeline{Bang: bang, Negated: negated, Inner: inner}, nil
}

func (p *Parser) parsePipelineInner() (PipelineInner, error) {
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	p.skipBlanks()
	var op PipeOp
	switch {
	case p.at("|&"):
		op = StdoutStderr
		p.pos += 2
	case p.at("|") && p.peekAt(1) != '|':
		op = Stdout
		p.pos++
	default:
		return cmd, nil
	}
	p.skipBlanksAndNewlines()
	next, err := p.parsePipelineInner()
	if err != nil {
		return nil, err
	}
	return &PipeSequence{Current: cmd, Op: op, Next: next}, nil
}

// parseCommand parses a Command: a CommandInner plus an optional trailing
// redirection.
func (p *Parser) parseCommand() (*Command, error) {
	start := p.pos
	var inner CommandInner
	var err error
	switch {
	case !p.eof() && p.peek() == '(':
		inner, err = p.parseSubshell()
	case p.atKeyword("if"):
		inner, err = p.parseIfClause()
	case p.atKeyword("for"):
		inner, err = p.parseForLoop()
	case p.at("$(("):
		inner, err = p.parseArithmeticExpression()
	default:
		inner, err = p.parseSimpleCommand()
	}
	if err != nil {
		return nil, err
	}
	p.skipBlanks()
	var redirect *Redirect
	if p.atRedirectStart() {
		redirect, err = p.parseRedirect()
		if err != nil {
			return nil, err
		}
	}
	end := inner.End()
	if redirect != nil {
		end = redirect.End()
	}
	return &Command{Inner: inner, Redirect: redirect, StartPos: Pos(start + 1), EndPos: end}, nil
}

func (p *Parser) atRedirectStart() bool {
	if p.eof() {
		return false
	}
	switch p.peek() {
	case '<', '>':
		return true
	case '&':
		return p.at("&>")
	}
	if p.peek() >= '0' && p.peek() <= '9' {
		i := p.pos
		for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
			i++
		}
		return i < len(p.src) && (p.src[i] == '<' || p.src[i] == '>')
	}
	return false
}

func (p *Parser) parseSubshell() (*Subshell, error) {
	lp := Pos(p.pos + 1)
	p.pos++ // '('
	list, err := p.parseSequentialList()
	if err != nil {
		return nil, err
	}
	p.skipBlanksAndNewlines()
	if p.eof() || p.peek() != ')' {
		return nil, p.errf(Pos(p.pos+1), "expected ')' to close subshell")
	}
	rp := Pos(p.pos + 1)
	p.pos++
	return &Subshell{Lparen: lp, Rparen: rp, List: list}, nil
}

func (p *Parser) parseArithmeticExpression() (*ArithmeticExpression, error) {
	left := Pos(p.pos + 1)
	part, err := p.lexArithmeticSubst()
	if err != nil {
		return nil, err
	}
	return &ArithmeticExpression{Left: left, Right: part.Right, X: part}, nil
}

// parseSimpleCommand parses leading EnvVar assignments followed by a
// command-name word and its argument words.
func (p *Parser) parseSimpleCommand() (*SimpleCommand, error) {
	start := p.pos
	var envVars []EnvVar
	for {
		save := p.pos
		ev, ok, err := p.tryParseEnvVar()
		if err != nil {
			return nil, err
		}
		if !ok {
			p.pos = save
			break
		}
		envVars = append(envVars, ev)
		p.skipBlanks()
	}
	var args []Word
	for {
		p.skipBlanks()
		if p.eof() || isWordBreak(p.peek()) {
			break
		}
		w, ok, err := p.lexWord()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		args = append(args, w)
	}
	if len(args) == 0 && len(envVars) == 0 {
		return nil, p.errf(Pos(p.pos+1), "expected a command")
	}
	end := Pos(p.pos)
	return &SimpleCommand{EnvVars: envVars, Args: args, StartPos: Pos(start + 1), EndPos: end}, nil
}

func (p *Parser) parseRedirect() (*Redirect, error) {
	opPos := Pos(p.pos + 1)
	var fd *RedirectFd
	if p.peek() >= '0' && p.peek() <= '9' {
		s := p.pos
		for p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		n := parseUintLiteral(string(p.src[s:p.pos]))
		fd = &RedirectFd{Fd: n}
	} else if p.peek() == '&' {
		fd = &RedirectFd{IsStdoutStderr: true}
		p.pos++
	}
	var op RedirectOp
	switch {
	case p.at("<&"):
		p.pos += 2
		op = RedirectInput{}
	case p.at("<"):
		p.pos++
		op = RedirectInput{}
	case p.at(">>"):
		p.pos += 2
		op = RedirectOutput{Mode: Append}
	case p.at(">&"):
		p.pos += 2
		op = RedirectOutput{Mode: Overwrite}
	case p.at(">"):
		p.pos++
		op = RedirectOutput{Mode: Overwrite}
	default:
		return nil, p.errf(opPos, "expected a redirection operator")
	}
	p.skipBlanks()
	iofStart := p.pos
	if p.peek() >= '0' && p.peek() <= '9' {
		maybe := p.pos
		s := p.pos
		for p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		if p.eof() || isWordBreak(p.peek()) {
			n := parseUintLiteral(string(p.src[s:p.pos]))
			return &Redirect{MaybeFd: fd, OpPos: opPos, Op: op, IoFile: &IoFileFd{Fd: n, StartPos: Pos(iofStart + 1)}}, nil
		}
		p.pos = maybe
	}
	w, ok, err := p.lexWord()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.errf(Pos(p.pos+1), "expected a filename after redirection operator")
	}
	return &Redirect{MaybeFd: fd, OpPos: opPos, Op: op, IoFile: &IoFileWord{W: w}}, nil
}

func parseUintLiteral(s string) uint32 {
	var n uint32
	for i := 0; i < len(s); i++ {
		n = n*10 + uint32(s[i]-'0')
	}
	return n
}

// parseIfClause parses `if COND then BODY [elif ...] [else ...] fi`.
func (p *Parser) parseIfClause() (*IfClause, error) {
	ifPos := Pos(p.pos + 1)
	p.pos += len("if")
	p.skipBlanksAndNewlines()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	p.skipBlanksAndNewlines()
	if !p.consumeKeyword("then") {
		return nil, p.errf(Pos(p.pos+1), "expected 'then'")
	}
	then, err := p.parseSequentialList()
	if err != nil {
		return nil, err
	}
	p.skipBlanksAndNewlines()
	var elsePart ElsePart
	switch {
	case p.atKeyword("elif"):
		elifPos := Pos(p.pos + 1)
		p.pos += len("elif")
		p.skipBlanksAndNewlines()
		elifCond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		p.skipBlanksAndNewlines()
		if !p.consumeKeyword("then") {
			return nil, p.errf(Pos(p.pos+1), "expected 'then'")
		}
		elifThen, err := p.parseSequentialList()
		if err != nil {
			return nil, err
		}
		p.skipBlanksAndNewlines()
		var tailElse ElsePart
		switch {
		case p.atKeyword("elif") || p.atKeyword("else"):
			rest, err := p.parseIfClauseTail()
			if err != nil {
				return nil, err
			}
			tailElse = rest
		}
		fiPos := Pos(p.pos + 1)
		if tailElse == nil {
			if !p.consumeKeyword("fi") {
				return nil, p.errf(Pos(p.pos+1), "expected 'fi'")
			}
			fiPos = Pos(p.pos - 1)
		}
		elifClause := &IfClause{IfPos: elifPos, FiPos: fiPos, Condition: elifCond, Then: elifThen, ElsePart: tailElse}
		elsePart = &ElifClause{Clause: elifClause}
		return &IfClause{IfPos: ifPos, FiPos: elifClause.FiPos, Condition: cond, Then: then, ElsePart: elsePart}, nil
	case p.atKeyword("else"):
		elsePos := Pos(p.pos + 1)
		p.pos += len("else")
		body, err := p.parseSequentialList()
		if err != nil {
			return nil, err
		}
		p.skipBlanksAndNewlines()
		if !p.consumeKeyword("fi") {
			return nil, p.errf(Pos(p.pos+1), "expected 'fi'")
		}
		elsePart = &ElseClause{ElsePos: elsePos, Body: body}
		return &IfClause{IfPos: ifPos, FiPos: Pos(p.pos - 1), Condition: cond, Then: then, ElsePart: elsePart}, nil
	default:
		if !p.consumeKeyword("fi") {
			return nil, p.errf(Pos(p.pos+1), "expected 'fi'")
		}
		return &IfClause{IfPos: ifPos, FiPos: Pos(p.pos - 1), Condition: cond, Then: then}, nil
	}
}

// parseIfClauseTail parses the `elif`/`else` continuation of an already
// opened if-clause, without its own leading `if`/terminating `fi` token
// requirements being duplicated by the caller.
func (p *Parser) parseIfClauseTail() (ElsePart, error) {
	full, err := p.parseIfClauseFromElifOrElse()
	return full, err
}

func (p *Parser) parseIfClauseFromElifOrElse() (ElsePart, error) {
	switch {
	case p.atKeyword("elif"):
		elifPos := Pos(p.pos + 1)
		p.pos += len("elif")
		p.skipBlanksAndNewlines()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		p.skipBlanksAndNewlines()
		if !p.consumeKeyword("then") {
			return nil, p.errf(Pos(p.pos+1), "expected 'then'")
		}
		then, err := p.parseSequentialList()
		if err != nil {
			return nil, err
		}
		p.skipBlanksAndNewlines()
		var tail ElsePart
		if p.atKeyword("elif") || p.atKeyword("else") {
			tail, err = p.parseIfClauseFromElifOrElse()
			if err != nil {
				return nil, err
			}
		}
		fiPos := Pos(p.pos - 1)
		if tail == nil {
			if !p.consumeKeyword("fi") {
				return nil, p.errf(Pos(p.pos+1), "expected 'fi'")
			}
			fiPos = Pos(p.pos - 1)
		}
		clause := &IfClause{IfPos: elifPos, FiPos: fiPos, Condition: cond, Then: then, ElsePart: tail}
		return &ElifClause{Clause: clause}, nil
	case p.atKeyword("else"):
		elsePos := Pos(p.pos + 1)
		p.pos += len("else")
		body, err := p.parseSequentialList()
		if err != nil {
			return nil, err
		}
		p.skipBlanksAndNewlines()
		if !p.consumeKeyword("fi") {
			return nil, p.errf(Pos(p.pos+1), "expected 'fi'")
		}
		return &ElseClause{ElsePos: elsePos, Body: body}, nil
	default:
		return nil, p.errf(Pos(p.pos+1), "expected 'elif' or 'else'")
	}
}

func (p *Parser) consumeKeyword(kw string) bool {
	p.skipBlanksAndNewlines()
	if !p.atKeyword(kw) {
		return false
	}
	p.pos += len(kw)
	return true
}

// parseCondition parses the `[[ ... ]]`-style binary/unary test used by
// IfClause (spec.md §3.1).
func (p *Parser) parseCondition() (*Condition, error) {
	if !p.at("[[") {
		return nil, p.errf(Pos(p.pos+1), "expected '[[' to start a condition")
	}
	lb := Pos(p.pos + 1)
	p.pos += 2
	p.skipBlanksAndNewlines()
	var left Word
	var ok bool
	if !p.atUnaryTestFlag() {
		var err error
		left, ok, err = p.lexWord()
		if err != nil {
			return nil, err
		}
	}
	p.skipBlanks()
	cond := &Condition{Lbrack: lb}
	if ok && p.atTestOperator() {
		op, isBinary, unaryOp, hasUnary := p.readTestOperator()
		p.skipBlanks()
		if isBinary {
			right, ok2, err := p.lexWord()
			if err != nil {
				return nil, err
			}
			if !ok2 {
				return nil, p.errf(Pos(p.pos+1), "expected right-hand word in condition")
			}
			cond.Binary = &BinaryTest{Left: left, Op: op, Right: right}
		} else {
			right, ok2, err := p.lexWord()
			if err != nil {
				return nil, err
			}
			if !ok2 {
				return nil, p.errf(Pos(p.pos+1), "expected word in condition")
			}
			cond.Unary = &UnaryTest{Op: unaryOp, HasOp: hasUnary, Right: right}
		}
	} else if ok {
		cond.Unary = &UnaryTest{Op: TestNone, HasOp: false, Right: left}
	} else if p.atUnaryTestFlag() {
		unaryOp := p.readUnaryFlag()
		p.skipBlanks()
		right, ok2, err := p.lexWord()
		if err != nil {
			return nil, err
		}
		if !ok2 {
			return nil, p.errf(Pos(p.pos+1), "expected word in condition")
		}
		cond.Unary = &UnaryTest{Op: unaryOp, HasOp: true, Right: right}
	} else {
		return nil, p.errf(Pos(p.pos+1), "expected a condition expression")
	}
	p.skipBlanksAndNewlines()
	if !p.at("]]") {
		return nil, p.errf(Pos(p.pos+1), "expected ']]' to close condition")
	}
	cond.Rbrack = Pos(p.pos + 1)
	p.pos += 2
	p.skipBlanks()
	if !p.eof() && p.peek() == ';' {
		p.pos++
	}
	return cond, nil
}

func (p *Parser) atTestOperator() bool {
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if p.at(op) {
			return true
		}
	}
	return false
}

func (p *Parser) readTestOperator() (BinaryOp, bool, UnaryOp, bool) {
	switch {
	case p.at("=="):
		p.pos += 2
		return OpEq, true, 0, false
	case p.at("!="):
		p.pos += 2
		return OpNe, true, 0, false
	case p.at("<="):
		p.pos += 2
		return OpLe, true, 0, false
	case p.at(">="):
		p.pos += 2
		return OpGe, true, 0, false
	case p.at("<"):
		p.pos++
		return OpLt, true, 0, false
	case p.at(">"):
		p.pos++
		return OpGt, true, 0, false
	}
	return 0, false, 0, false
}

func (p *Parser) atUnaryTestFlag() bool {
	return p.peek() == '-' && isNameStart(p.peekAt(1))
}

var unaryFlags = map[string]UnaryOp{
	"-e": TestFileExists,
	"-f": TestRegularFile,
	"-d": TestDirectory,
	"-L": TestSymlink,
	"-h": TestSymlink,
	"-r": TestReadable,
	"-w": TestWritable,
	"-x": TestExecutable,
	"-s": TestNonEmptyFile,
	"-z": TestStringEmpty,
	"-n": TestStringNonEmpty,
	"-v": TestVarSet,
}

func (p *Parser) readUnaryFlag() UnaryOp {
	s := p.pos
	p.pos += 2
	if op, ok := unaryFlags[string(p.src[s:p.pos])]; ok {
		return op
	}
	return TestNone
}

// parseForLoop parses `for NAME in WORDS; do BODY; done`.
func (p *Parser) parseForLoop() (*ForLoop, error) {
	forPos := Pos(p.pos + 1)
	p.pos += len("for")
	p.skipBlanks()
	if p.eof() || !isNameStart(p.peek()) {
		return nil, p.errf(Pos(p.pos+1), "expected a variable name after 'for'")
	}
	s := p.pos
	for !p.eof() && isNameCont(p.peek()) {
		p.pos++
	}
	name := string(p.src[s:p.pos])
	p.skipBlanksAndNewlines()
	if !p.consumeKeyword("in") {
		return nil, p.errf(Pos(p.pos+1), "expected 'in' after for-loop variable")
	}
	var words []Word
	for {
		p.skipBlanks()
		if p.eof() || p.peek() == ';' || p.peek() == '\n' {
			break
		}
		w, ok, err := p.lexWord()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		words = append(words, w)
	}
	p.skipBlanks()
	if !p.eof() && p.peek() == ';' {
		p.pos++
	}
	p.skipBlanksAndNewlines()
	if !p.consumeKeyword("do") {
		return nil, p.errf(Pos(p.pos+1), "expected 'do'")
	}
	body, err := p.parseSequentialList()
	if err != nil {
		return nil, err
	}
	p.skipBlanksAndNewlines()
	if !p.consumeKeyword("done") {
		return nil, p.errf(Pos(p.pos+1), "expected 'done'")
	}
	return &ForLoop{ForPos: forPos, DonePos: Pos(p.pos - 4), VarName: name, Wordlist: words, Body: body}, nil
}
