package parser

func canStartPrimary(kind TokenKind) bool {
	switch kind {
	case TokenIdent, TokenNumber, TokenString, TokenMultilineStringStart,
		TokenMultilineStringContinue, TokenDate, TokenTrue, TokenFalse,
		TokenUndefined, TokenNull, TokenNew, TokenQuestion, TokenLParen,
		TokenAwait:
		return true
	}
	return false
}

func canStartExpr(kind TokenKind) bool {
	switch kind {
	case TokenNot, TokenMinus, TokenPlus:
		return true
	}
	return canStartPrimary(kind)
}

func (s *state) parseExpr() *Node {
	return s.parseOr()
}

func (s *state) parseOr() *Node {
	left := s.parseAnd()
	for s.check(TokenOr) {
		n := s.wrap(KindOrExpr, left)
		s.keyword(n, TokenOr)
		n.add(s.parseAnd())
		left = s.close(n)
	}
	return left
}

func (s *state) parseAnd() *Node {
	left := s.parseNot()
	for s.check(TokenAnd) {
		n := s.wrap(KindAndExpr, left)
		s.keyword(n, TokenAnd)
		n.add(s.parseNot())
		left = s.close(n)
	}
	return left
}

func (s *state) parseNot() *Node {
	if !s.check(TokenNot) {
		return s.parseCompare()
	}
	n := s.open(KindUnaryExpr)
	s.keyword(n, TokenNot)
	n.add(s.parseNot())
	return s.close(n)
}

func isCompareOp(kind TokenKind) bool {
	switch kind {
	case TokenAssign, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE:
		return true
	}
	return false
}

func (s *state) parseCompare() *Node {
	left := s.parseAdd()
	for isCompareOp(s.peek().Kind) {
		n := s.wrap(KindCompareExpr, left)
		n.add(s.operator(KindCompareOp))
		n.add(s.parseAdd())
		left = s.close(n)
	}
	return left
}

func (s *state) parseAdd() *Node {
	left := s.parseMul()
	for s.check(TokenPlus) || s.check(TokenMinus) {
		n := s.wrap(KindAddExpr, left)
		n.add(s.operator(KindArithOp))
		n.add(s.parseMul())
		left = s.close(n)
	}
	return left
}

func (s *state) parseMul() *Node {
	left := s.parseUnary()
	for s.check(TokenStar) || s.check(TokenSlash) || s.check(TokenPercent) {
		n := s.wrap(KindMulExpr, left)
		n.add(s.operator(KindArithOp))
		n.add(s.parseUnary())
		left = s.close(n)
	}
	return left
}

func (s *state) parseUnary() *Node {
	if !s.check(TokenMinus) && !s.check(TokenPlus) {
		return s.parsePostfix()
	}
	n := s.open(KindUnaryExpr)
	n.add(s.operator(KindArithOp))
	n.add(s.parseUnary())
	return s.close(n)
}

func (s *state) parsePostfix() *Node {
	base := s.parsePrimary()
	for {
		switch s.peek().Kind {
		case TokenDot:
			n := s.wrap(KindMemberAccess, base)
			s.advance()
			n.add(s.parseMemberName())
			base = s.close(n)
		case TokenLBracket:
			n := s.wrap(KindIndexAccess, base)
			s.advance()
			n.add(s.parseExpr())
			s.expectPunct(n, TokenRBracket)
			base = s.close(n)
		case TokenLParen:
			n := s.wrap(KindCallExpr, base)
			n.add(s.parseCallArgs())
			base = s.close(n)
		default:
			return base
		}
	}
}

// parseMemberName accepts keywords as member names, as in Запрос.Выполнить().
func (s *state) parseMemberName() *Node {
	if kind := s.peek().Kind; kind == TokenIdent || kind.IsKeyword() {
		return s.leaf(KindIdentifier, s.advance())
	}
	return s.missing("expected member name", TokenIdent)
}

func (s *state) parsePrimary() *Node {
	tok := s.peek()
	switch tok.Kind {
	case TokenIdent:
		return s.leaf(KindIdentifier, s.advance())
	case TokenNumber:
		return s.leaf(KindNumber, s.advance())
	case TokenString:
		return s.parseClosedLiteral(KindString, "unterminated string")
	case TokenDate:
		return s.parseClosedLiteral(KindDate, "unterminated date")
	case TokenMultilineStringStart:
		return s.parseMultilineString()
	case TokenMultilineStringContinue:
		n := s.open(KindError)
		n.Error = &Error{Message: "continuation line outside of a string"}
		s.advance()
		return s.close(n)
	case TokenTrue, TokenFalse, TokenUndefined, TokenNull:
		n := s.open(KindLiteral)
		s.keyword(n, tok.Kind)
		return s.close(n)
	case TokenNew:
		return s.parseNew()
	case TokenQuestion:
		return s.parseTernary()
	case TokenLParen:
		n := s.open(KindParenExpr)
		s.advance()
		n.add(s.parseExpr())
		s.expectPunct(n, TokenRParen)
		return s.close(n)
	case TokenAwait:
		n := s.open(KindAwaitExpr)
		s.keyword(n, TokenAwait)
		n.add(s.parsePostfix())
		return s.close(n)
	}
	return s.missing("expected expression")
}

// parseClosedLiteral marks an unterminated literal with a zero-width error at
// its end.
func (s *state) parseClosedLiteral(kind NodeKind, msg string) *Node {
	tok := s.advance()
	n := s.leaf(kind, tok)
	if !tok.Closed {
		n.add(s.missing(msg))
	}
	return n
}

func (s *state) parseMultilineString() *Node {
	n := s.open(KindMultilineString)
	n.add(s.leaf(KindMultilineStringStart, s.advance()))
	closed := false
	for !closed && s.check(TokenMultilineStringContinue) {
		tok := s.advance()
		n.add(s.leaf(KindMultilineStringContinue, tok))
		closed = tok.Closed
	}
	if !closed {
		n.add(s.missing("unterminated string"))
	}
	return s.close(n)
}

func (s *state) parseNew() *Node {
	n := s.open(KindNewExpr)
	s.keyword(n, TokenNew)
	hasType := s.check(TokenIdent)
	if hasType {
		n.add(s.leaf(KindTypeName, s.advance()))
	}
	if s.check(TokenLParen) {
		n.add(s.parseCallArgs())
	} else if !hasType {
		n.add(s.missing("expected type name", TokenIdent, TokenLParen))
	}
	return s.close(n)
}

// parseTernary parses ?(condition, then, else).
func (s *state) parseTernary() *Node {
	n := s.open(KindTernaryExpr)
	s.advance()
	s.expectPunct(n, TokenLParen)
	n.add(s.parseExpr())
	s.expectPunct(n, TokenComma)
	n.add(s.parseExpr())
	s.expectPunct(n, TokenComma)
	n.add(s.parseExpr())
	s.expectPunct(n, TokenRParen)
	return s.close(n)
}

// parseCallArgs parses an argument list. Arguments may be left out, as in
// Метод(, Второй).
func (s *state) parseCallArgs() *Node {
	n := s.open(KindCallArgs)
	s.advance()
	for {
		if !s.check(TokenComma) && !s.check(TokenRParen) {
			if !canStartExpr(s.peek().Kind) {
				break
			}
			n.add(s.parseExpr())
		}
		if !s.accept(TokenComma) {
			break
		}
	}
	s.expectPunct(n, TokenRParen)
	return s.close(n)
}
