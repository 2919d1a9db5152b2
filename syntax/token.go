package syntax

// TokKind enumerates the punctuation and keyword tokens the parser
// recognizes between words, grounded on the teacher's token.go (trimmed to
// the operators and keywords spec.md's grammar uses).
type TokKind int

const (
	TEOF TokKind = iota
	TNewline
	TSemicolon // ;
	TAmp       // &
	TAndAnd    // &&
	TOrOr      // ||
	TPipe      // |
	TPipeAmp   // |&
	TLparen    // (
	TRparen    // )
	TBang      // !
	TLbrack2   // [[
	TRbrack2   // ]]
	TLess      // <
	TGreat     // >
	TDGreat    // >>
	TLessAmp   // <&
	TGreatAmp  // >&
	TAmpGreat  // &>
	TAmpDGreat // &>>
	TWord      // any word (identifiers, literals)

	// keywords
	TIf
	TThen
	TElif
	TElse
	TFi
	TFor
	TIn
	TDo
	TDone
)

var keywords = map[string]TokKind{
	"if":   TIf,
	"then": TThen,
	"elif": TElif,
	"else": TElse,
	"fi":   TFi,
	"for":  TFor,
	"in":   TIn,
	"do":   TDo,
	"done": TDone,
}
