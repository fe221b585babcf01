package parser

import (
	"strconv"
	"strings"
)

type NodeKind int

const (
	KindError NodeKind = iota

	// Module level
	KindModule
	KindPreprocLine
	KindAnnotation
	KindAnnotationType
	KindProcedureDef
	KindFunctionDef
	KindParamList
	KindParam
	KindVarDecl
	KindVarSpec

	// Statements
	KindAssignment
	KindCallStmt
	KindIfStmt
	KindElseIfClause
	KindElseClause
	KindWhileStmt
	KindForStmt
	KindTryStmt
	KindExceptClause
	KindReturnStmt
	KindRaiseStmt
	KindBreakStmt
	KindContinueStmt
	KindGotoStmt
	KindLabelStmt
	KindLabel
	KindAddHandlerStmt
	KindRemoveHandlerStmt
	KindExecuteStmt

	// Expressions
	KindOrExpr
	KindAndExpr
	KindUnaryExpr
	KindCompareExpr
	KindAddExpr
	KindMulExpr
	KindAwaitExpr
	KindNewExpr
	KindTypeName
	KindTernaryExpr
	KindParenExpr
	KindCallExpr
	KindCallArgs
	KindMemberAccess
	KindIndexAccess
	KindIdentifier
	KindNumber
	KindString
	KindMultilineString
	KindMultilineStringStart
	KindMultilineStringContinue
	KindDate
	KindLiteral

	// Operator and keyword leaves
	KindArithOp
	KindCompareOp
	KindAssignOp
	KindKeyword

	KindComment
)

var nodeKindNames = map[NodeKind]string{
	KindError:                   "⚠",
	KindModule:                  "Module",
	KindPreprocLine:             "PreprocLine",
	KindAnnotation:              "Annotation",
	KindAnnotationType:          "AnnotationType",
	KindProcedureDef:            "ProcedureDef",
	KindFunctionDef:             "FunctionDef",
	KindParamList:               "ParamList",
	KindParam:                   "Param",
	KindVarDecl:                 "VarDecl",
	KindVarSpec:                 "VarSpec",
	KindAssignment:              "Assignment",
	KindCallStmt:                "CallStmt",
	KindIfStmt:                  "IfStmt",
	KindElseIfClause:            "ElseIfClause",
	KindElseClause:              "ElseClause",
	KindWhileStmt:               "WhileStmt",
	KindForStmt:                 "ForStmt",
	KindTryStmt:                 "TryStmt",
	KindExceptClause:            "ExceptClause",
	KindReturnStmt:              "ReturnStmt",
	KindRaiseStmt:               "RaiseStmt",
	KindBreakStmt:               "BreakStmt",
	KindContinueStmt:            "ContinueStmt",
	KindGotoStmt:                "GotoStmt",
	KindLabelStmt:               "LabelStmt",
	KindLabel:                   "Label",
	KindAddHandlerStmt:          "AddHandlerStmt",
	KindRemoveHandlerStmt:       "RemoveHandlerStmt",
	KindExecuteStmt:             "ExecuteStmt",
	KindOrExpr:                  "OrExpr",
	KindAndExpr:                 "AndExpr",
	KindUnaryExpr:               "UnaryExpr",
	KindCompareExpr:             "CompareExpr",
	KindAddExpr:                 "AddExpr",
	KindMulExpr:                 "MulExpr",
	KindAwaitExpr:               "AwaitExpr",
	KindNewExpr:                 "NewExpr",
	KindTypeName:                "TypeName",
	KindTernaryExpr:             "TernaryExpr",
	KindParenExpr:               "ParenExpr",
	KindCallExpr:                "CallExpr",
	KindCallArgs:                "CallArgs",
	KindMemberAccess:            "MemberAccess",
	KindIndexAccess:             "IndexAccess",
	KindIdentifier:              "Identifier",
	KindNumber:                  "Number",
	KindString:                  "String",
	KindMultilineString:         "MultilineString",
	KindMultilineStringStart:    "MultilineStringStart",
	KindMultilineStringContinue: "MultilineStringContinue",
	KindDate:                    "Date",
	KindLiteral:                 "Literal",
	KindArithOp:                 "ArithOp",
	KindCompareOp:               "CompareOp",
	KindAssignOp:                "AssignOp",
	KindKeyword:                 "Keyword",
	KindComment:                 "Comment",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindByName returns the node kind with the given name.
func KindByName(name string) (NodeKind, bool) {
	for kind, n := range nodeKindNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

type Error struct {
	Message  string
	Expected []TokenKind
}

// Node is an immutable syntax tree node covering the bytes [From, To).
// Nodes may be shared by several trees, so they carry no parent links; use a
// Cursor to walk upwards.
type Node struct {
	Kind     NodeKind
	From     int
	To       int
	Children []*Node
	// Keyword holds the keyword kind of a KindKeyword leaf.
	Keyword TokenKind
	Error   *Error

	lookAhead int
	hasError  bool
}

// Name returns the name consumers see: keyword leaves are named by their
// canonical spelling, other nodes by their kind.
func (n *Node) Name() string {
	if n.Kind == KindKeyword {
		return n.Keyword.String()
	}
	return n.Kind.String()
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

// HasError reports whether the node or any descendant is an error node.
func (n *Node) HasError() bool {
	return n.hasError
}

// LookAhead returns one past the furthest byte the lexer examined while the
// node was built. It can exceed To.
func (n *Node) LookAhead() int {
	return n.lookAhead
}

func (n *Node) Len() int {
	return n.To - n.From
}

func (n *Node) Text(src string) string {
	if n.From < 0 || n.To > len(src) || n.From > n.To {
		return ""
	}
	return src[n.From:n.To]
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// HasKeyword reports whether a direct child is the given keyword leaf.
func (n *Node) HasKeyword(kw TokenKind) bool {
	for _, child := range n.Children {
		if child.Kind == KindKeyword && child.Keyword == kw {
			return true
		}
	}
	return false
}

// String returns the compact form Module(ProcedureDef(procedure,Identifier)).
func (n *Node) String() string {
	var sb strings.Builder
	n.writeCompact(&sb)
	return sb.String()
}

func (n *Node) writeCompact(sb *strings.Builder) {
	sb.WriteString(n.Name())
	if len(n.Children) == 0 {
		return
	}
	sb.WriteByte('(')
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		child.writeCompact(sb)
	}
	sb.WriteByte(')')
}

// Format returns an indented outline, one node per line.
func (n *Node) Format(showPositions bool) string {
	var sb strings.Builder
	n.formatIndent(&sb, 0, showPositions)
	return sb.String()
}

func (n *Node) formatIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Name())
	if showPositions {
		sb.WriteString(" [" + strconv.Itoa(n.From) + ".." + strconv.Itoa(n.To) + "]")
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteByte('\n')

	for _, child := range n.Children {
		child.formatIndent(sb, indent+1, showPositions)
	}
}

// shifted returns a copy of n moved by delta bytes. Subtrees are copied as
// well, since positions are absolute.
func (n *Node) shifted(delta int) *Node {
	if delta == 0 {
		return n
	}
	c := *n
	c.From += delta
	c.To += delta
	c.lookAhead += delta
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.shifted(delta)
		}
	}
	return &c
}
