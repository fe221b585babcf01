package format

import (
	"encoding"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *parser.Tree) error
}
