package parser

import "sort"

type Option func(*Parser)

// WithSpecializer sets the specializer for a terminal. The lexer consults the
// specializer registered for TokenIdent; a nil fn removes the entry.
func WithSpecializer(term TokenKind, fn SpecializeFunc) Option {
	return func(p *Parser) {
		if fn == nil {
			delete(p.specializers, term)
			return
		}
		p.specializers[term] = fn
	}
}

// WithComments keeps comments in the tree as Comment nodes.
func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// Parser is an immutable parser configuration. It is safe to share between
// goroutines; every Parse call uses its own state.
type Parser struct {
	specializers    map[TokenKind]SpecializeFunc
	includeComments bool
}

// New returns a parser for the BSL grammar. The grammar declares a single
// specializer, LookupKeyword on identifiers.
func New(opts ...Option) *Parser {
	p := &Parser{
		specializers: map[TokenKind]SpecializeFunc{TokenIdent: LookupKeyword},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configure returns a copy of p with opts applied.
func (p *Parser) Configure(opts ...Option) *Parser {
	c := &Parser{
		specializers:    p.Specializers(),
		includeComments: p.includeComments,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Specializers returns a copy of the registered specializers.
func (p *Parser) Specializers() map[TokenKind]SpecializeFunc {
	m := make(map[TokenKind]SpecializeFunc, len(p.specializers))
	for term, fn := range p.specializers {
		m[term] = fn
	}
	return m
}

func (p *Parser) IncludesComments() bool {
	return p.includeComments
}

// Parse parses text. Fragments from an earlier tree, re-anchored with
// ApplyChanges, let the parser take over unchanged subtrees instead of
// parsing them again. Parse never fails: unparseable input ends up in error
// nodes.
func (p *Parser) Parse(text string, fragments ...TreeFragment) *Tree {
	s := &state{
		input:           text,
		lexer:           NewLexer(text, p.specializers[TokenIdent]),
		includeComments: p.includeComments,
	}
	if len(fragments) > 0 {
		s.frags = &fragmentCursor{fragments: fragments}
	}

	root := s.parseModule()
	if len(s.comments) > 0 {
		insertComments(root, s.comments)
	}
	return &Tree{Root: root, length: len(text), reused: s.reused}
}

type state struct {
	input           string
	lexer           *Lexer
	includeComments bool

	buf      []Token
	lastEnd  int
	comments []Token
	stops    []TokenKind

	frags  *fragmentCursor
	reused int
}

func (s *state) scan() Token {
	for {
		tok := s.lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment:
			if s.includeComments {
				s.comments = append(s.comments, tok)
			}
			continue
		}
		return tok
	}
}

func (s *state) peek() Token {
	return s.peekN(0)
}

func (s *state) peekN(n int) Token {
	for len(s.buf) <= n {
		s.buf = append(s.buf, s.scan())
	}
	return s.buf[n]
}

func (s *state) advance() Token {
	tok := s.peek()
	if tok.Kind != TokenEOF {
		s.buf = s.buf[1:]
		s.lastEnd = tok.To
	}
	return tok
}

func (s *state) check(kind TokenKind) bool {
	return s.peek().Kind == kind
}

func (s *state) accept(kind TokenKind) bool {
	if s.check(kind) {
		s.advance()
		return true
	}
	return false
}

// pushStops adds tokens that end the innermost statement list. The returned
// func restores the previous set.
func (s *state) pushStops(kinds ...TokenKind) func() {
	saved := len(s.stops)
	s.stops = append(s.stops, kinds...)
	return func() {
		s.stops = s.stops[:saved]
	}
}

func (s *state) isStop(kind TokenKind) bool {
	if kind == TokenEOF {
		return true
	}
	for _, k := range s.stops {
		if k == kind {
			return true
		}
	}
	return false
}

func (s *state) open(kind NodeKind) *Node {
	return &Node{Kind: kind, From: s.peek().From}
}

func (s *state) wrap(kind NodeKind, first *Node) *Node {
	n := &Node{Kind: kind, From: first.From}
	n.add(first)
	return n
}

func (s *state) close(n *Node) *Node {
	n.To = max(s.lastEnd, n.From)
	if n.Kind == KindError {
		n.hasError = true
	}
	n.lookAhead = s.lexer.Horizon()
	return n
}

func (s *state) leaf(kind NodeKind, tok Token) *Node {
	return &Node{
		Kind:      kind,
		From:      tok.From,
		To:        tok.To,
		lookAhead: s.lexer.Horizon(),
	}
}

// keyword consumes kind, if present, as a keyword leaf of n.
func (s *state) keyword(n *Node, kind TokenKind) bool {
	if !s.check(kind) {
		return false
	}
	leaf := s.leaf(KindKeyword, s.advance())
	leaf.Keyword = kind
	n.add(leaf)
	return true
}

func (s *state) expectKeyword(n *Node, kind TokenKind) {
	if !s.keyword(n, kind) {
		n.add(s.missing("expected "+kind.String(), kind))
	}
}

func (s *state) expectPunct(n *Node, kind TokenKind) {
	if !s.accept(kind) {
		n.add(s.missing("expected "+kind.String(), kind))
	}
}

func (s *state) operator(kind NodeKind) *Node {
	return s.leaf(kind, s.advance())
}

// missing returns a zero-width error node right after the last consumed
// token.
func (s *state) missing(msg string, expected ...TokenKind) *Node {
	return &Node{
		Kind:      KindError,
		From:      s.lastEnd,
		To:        s.lastEnd,
		Error:     &Error{Message: msg, Expected: expected},
		hasError:  true,
		lookAhead: s.lexer.Horizon(),
	}
}

// skip wraps unexpected tokens in an error node. It consumes at least one
// token and stops before anything that can start a statement or ends the
// current statement list.
func (s *state) skip() *Node {
	tok := s.peek()
	n := s.open(KindError)
	n.Error = &Error{Message: "unexpected " + describe(tok)}
	s.advance()
	for {
		kind := s.peek().Kind
		if s.isStop(kind) || kind == TokenSemicolon || isStatementStart(kind) || isMethodStart(kind) {
			break
		}
		s.advance()
	}
	return s.close(n)
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenError:
		return tok.Kind.String() + " " + tok.Text
	}
	return tok.Kind.String()
}

func (n *Node) add(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if child.hasError {
		n.hasError = true
	}
}

// reuse takes over a node from the fragments when one of an accepted kind
// starts at the current token.
func (s *state) reuse(accept func(NodeKind) bool) *Node {
	if s.frags == nil {
		return nil
	}
	tok := s.peek()
	if tok.Kind == TokenEOF {
		return nil
	}
	node, delta, ok := s.frags.nodeAt(tok.From, accept)
	if !ok {
		return nil
	}
	node = node.shifted(delta)

	s.buf = s.buf[:0]
	s.dropComments(node.From)
	s.lexer.Reset(node.To)
	s.lexer.extendHorizon(node.lookAhead)
	s.lastEnd = node.To
	s.reused++
	return node
}

func (s *state) dropComments(from int) {
	i := len(s.comments)
	for i > 0 && s.comments[i-1].From >= from {
		i--
	}
	s.comments = s.comments[:i]
}

type fragmentCursor struct {
	fragments []TreeFragment
	i         int
}

// nodeAt looks for the outermost error-free node of an accepted kind that
// starts at pos (a position in the new document) and lies inside a
// fragment. When the fragment ends at an edit, everything the lexer looked at
// while building the node must lie inside the fragment too.
func (fc *fragmentCursor) nodeAt(pos int, accept func(NodeKind) bool) (*Node, int, bool) {
	for fc.i < len(fc.fragments) && fc.fragments[fc.i].To <= pos {
		fc.i++
	}
	if fc.i >= len(fc.fragments) {
		return nil, 0, false
	}
	f := fc.fragments[fc.i]
	if pos < f.From || f.tree == nil || f.tree.Root == nil {
		return nil, 0, false
	}

	target := pos + f.Offset
	n := f.tree.Root
	for {
		children := n.Children
		i := sort.Search(len(children), func(i int) bool { return children[i].To > target })
		if i == len(children) || children[i].From > target {
			return nil, 0, false
		}
		child := children[i]
		if child.From == target && accept(child.Kind) && !child.hasError {
			from, to := child.From-f.Offset, child.To-f.Offset
			if from >= f.From && to <= f.To && (!f.OpenEnd || child.lookAhead-f.Offset <= f.To) {
				return child, -f.Offset, true
			}
		}
		n = child
	}
}

func insertComments(root *Node, comments []Token) {
	for _, tok := range comments {
		c := &Node{Kind: KindComment, From: tok.From, To: tok.To, lookAhead: tok.To}
		insertComment(root, c)
	}
}

// insertComment adds c to the innermost node around it, keeping children in
// document order.
func insertComment(n *Node, c *Node) {
	for {
		children := n.Children
		i := sort.Search(len(children), func(i int) bool { return children[i].To > c.From })
		if i < len(children) {
			child := children[i]
			if child.From <= c.From && c.To <= child.To && len(child.Children) > 0 {
				n = child
				continue
			}
		}
		at := sort.Search(len(children), func(i int) bool { return children[i].From >= c.To })
		n.Children = append(n.Children, nil)
		copy(n.Children[at+1:], n.Children[at:])
		n.Children[at] = c
		return
	}
}

func isMethodStart(kind TokenKind) bool {
	switch kind {
	case TokenProcedure, TokenFunction, TokenAsync, TokenAmp:
		return true
	}
	return false
}

func isStatementStart(kind TokenKind) bool {
	switch kind {
	case TokenIf, TokenWhile, TokenFor, TokenTry, TokenReturn, TokenRaise,
		TokenBreak, TokenContinue, TokenGoto, TokenTilde, TokenAddHandler,
		TokenRemoveHandler, TokenExecute, TokenVar, TokenPreproc:
		return true
	}
	return canStartPrimary(kind)
}

func isStatementKind(kind NodeKind) bool {
	switch kind {
	case KindAssignment, KindCallStmt, KindIfStmt, KindWhileStmt, KindForStmt,
		KindTryStmt, KindReturnStmt, KindRaiseStmt, KindBreakStmt,
		KindContinueStmt, KindGotoStmt, KindLabelStmt, KindAddHandlerStmt,
		KindRemoveHandlerStmt, KindExecuteStmt, KindVarDecl, KindPreprocLine:
		return true
	}
	return false
}

func isModuleItemKind(kind NodeKind) bool {
	return kind == KindProcedureDef || kind == KindFunctionDef || isStatementKind(kind)
}

func (s *state) parseModule() *Node {
	n := &Node{Kind: KindModule}
	s.pushStops(TokenProcedure, TokenFunction, TokenAsync, TokenAmp)
	for !s.check(TokenEOF) {
		if item := s.reuse(isModuleItemKind); item != nil {
			n.add(item)
			continue
		}
		kind := s.peek().Kind
		switch {
		case kind == TokenSemicolon:
			s.advance()
		case isMethodStart(kind):
			n.add(s.parseMethod())
		case isStatementStart(kind):
			n.add(s.parseStatement())
		default:
			n.add(s.skip())
		}
	}
	n.To = len(s.input)
	n.lookAhead = s.lexer.Horizon()
	return n
}

func (s *state) parseMethod() *Node {
	n := s.open(KindProcedureDef)
	for s.check(TokenAmp) {
		n.add(s.parseAnnotation())
	}
	s.keyword(n, TokenAsync)

	end := TokenEndProcedure
	switch {
	case s.keyword(n, TokenProcedure):
	case s.keyword(n, TokenFunction):
		n.Kind = KindFunctionDef
		end = TokenEndFunction
	default:
		n.add(s.missing("expected procedure or function", TokenProcedure, TokenFunction))
		return s.close(n)
	}

	n.add(s.parseName())
	if s.check(TokenLParen) {
		n.add(s.parseParamList())
	} else {
		n.add(s.missing("expected (", TokenLParen))
	}
	s.keyword(n, TokenExport)

	restore := s.pushStops(TokenEndProcedure, TokenEndFunction)
	s.parseBody(n)
	restore()

	s.expectKeyword(n, end)
	return s.close(n)
}

func (s *state) parseAnnotation() *Node {
	n := s.open(KindAnnotation)
	s.advance()
	if s.check(TokenIdent) {
		n.add(s.leaf(KindAnnotationType, s.advance()))
	} else {
		n.add(s.missing("expected annotation name", TokenIdent))
	}
	if s.check(TokenLParen) {
		n.add(s.parseCallArgs())
	}
	return s.close(n)
}

func (s *state) parseName() *Node {
	if s.check(TokenIdent) {
		return s.leaf(KindIdentifier, s.advance())
	}
	return s.missing("expected identifier", TokenIdent)
}

func (s *state) parseParamList() *Node {
	n := s.open(KindParamList)
	s.advance()
	for !s.check(TokenRParen) {
		if !s.check(TokenVal) && !s.check(TokenIdent) {
			break
		}
		n.add(s.parseParam())
		if !s.accept(TokenComma) {
			break
		}
	}
	s.expectPunct(n, TokenRParen)
	return s.close(n)
}

func (s *state) parseParam() *Node {
	n := s.open(KindParam)
	s.keyword(n, TokenVal)
	n.add(s.parseName())
	if s.check(TokenAssign) {
		n.add(s.operator(KindAssignOp))
		n.add(s.parseExpr())
	}
	return s.close(n)
}

// parseBody parses statements into n until a token in the current stop set.
func (s *state) parseBody(n *Node) {
	for {
		kind := s.peek().Kind
		if s.isStop(kind) {
			return
		}
		if st := s.reuse(isStatementKind); st != nil {
			n.add(st)
			continue
		}
		switch {
		case kind == TokenSemicolon:
			s.advance()
		case isStatementStart(kind):
			n.add(s.parseStatement())
		default:
			n.add(s.skip())
		}
	}
}
