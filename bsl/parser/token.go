package parser

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenPreproc

	// Literals
	TokenIdent
	TokenNumber
	TokenString
	TokenMultilineStringStart
	TokenMultilineStringContinue
	TokenDate

	// Keywords
	TokenAsync
	TokenAwait
	TokenExecute
	TokenProcedure
	TokenEndProcedure
	TokenFunction
	TokenEndFunction
	TokenExport
	TokenVal
	TokenVar
	TokenIf
	TokenThen
	TokenElseIf
	TokenElse
	TokenEndIf
	TokenWhile
	TokenDo
	TokenEndDo
	TokenFor
	TokenEach
	TokenIn
	TokenTo
	TokenTry
	TokenExcept
	TokenEndTry
	TokenReturn
	TokenRaise
	TokenGoto
	TokenBreak
	TokenContinue
	TokenAddHandler
	TokenRemoveHandler
	TokenNot
	TokenAnd
	TokenOr
	TokenNew
	TokenTrue
	TokenFalse
	TokenUndefined
	TokenNull

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenQuestion
	TokenColon
	TokenAmp
	TokenTilde
	TokenAssign
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
)

// NotKeyword is returned by a SpecializeFunc for text that stays a plain
// identifier.
const NotKeyword TokenKind = -1

var tokenKindNames = map[TokenKind]string{
	TokenEOF:                     "EOF",
	TokenError:                   "Error",
	TokenWhitespace:              "Whitespace",
	TokenComment:                 "Comment",
	TokenPreproc:                 "Preproc",
	TokenIdent:                   "Identifier",
	TokenNumber:                  "Number",
	TokenString:                  "String",
	TokenMultilineStringStart:    "MultilineStringStart",
	TokenMultilineStringContinue: "MultilineStringContinue",
	TokenDate:                    "Date",
	TokenAsync:                   "async",
	TokenAwait:                   "await",
	TokenExecute:                 "execute",
	TokenProcedure:               "procedure",
	TokenEndProcedure:            "endProcedure",
	TokenFunction:                "function",
	TokenEndFunction:             "endFunction",
	TokenExport:                  "export",
	TokenVal:                     "val",
	TokenVar:                     "var",
	TokenIf:                      "if",
	TokenThen:                    "then",
	TokenElseIf:                  "elseIf",
	TokenElse:                    "else",
	TokenEndIf:                   "endIf",
	TokenWhile:                   "while",
	TokenDo:                      "do",
	TokenEndDo:                   "endDo",
	TokenFor:                     "for",
	TokenEach:                    "each",
	TokenIn:                      "in",
	TokenTo:                      "to",
	TokenTry:                     "try",
	TokenExcept:                  "except",
	TokenEndTry:                  "endTry",
	TokenReturn:                  "return",
	TokenRaise:                   "raise",
	TokenGoto:                    "goto",
	TokenBreak:                   "break",
	TokenContinue:                "continue",
	TokenAddHandler:              "addHandler",
	TokenRemoveHandler:           "removeHandler",
	TokenNot:                     "not",
	TokenAnd:                     "and",
	TokenOr:                      "or",
	TokenNew:                     "new",
	TokenTrue:                    "true",
	TokenFalse:                   "false",
	TokenUndefined:               "undefined",
	TokenNull:                    "null",
	TokenLParen:                  "(",
	TokenRParen:                  ")",
	TokenLBracket:                "[",
	TokenRBracket:                "]",
	TokenSemicolon:               ";",
	TokenComma:                   ",",
	TokenDot:                     ".",
	TokenQuestion:                "?",
	TokenColon:                   ":",
	TokenAmp:                     "&",
	TokenTilde:                   "~",
	TokenAssign:                  "=",
	TokenNE:                      "<>",
	TokenLT:                      "<",
	TokenLE:                      "<=",
	TokenGT:                      ">",
	TokenGE:                      ">=",
	TokenPlus:                    "+",
	TokenMinus:                   "-",
	TokenStar:                    "*",
	TokenSlash:                   "/",
	TokenPercent:                 "%",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is one of the specialized identifier kinds.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenAsync && k <= TokenNull
}

type Token struct {
	Kind TokenKind
	From int
	To   int
	Text string
	// Closed is false for string literal pieces that ran into a line break
	// or the end of input without a terminating quote.
	Closed bool
}

// keywords maps canonical keyword spellings to their token kinds. Lookup is
// exact: the grammar itself is case sensitive.
var keywords = map[string]TokenKind{}

func init() {
	for k := TokenAsync; k <= TokenNull; k++ {
		keywords[k.String()] = k
	}
}

// LookupKeyword is the grammar's default specializer for identifiers.
func LookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return NotKeyword
}

// SpecializeFunc maps the text of a terminal to a more specific token kind,
// or NotKeyword to leave it alone.
type SpecializeFunc func(text string) TokenKind
