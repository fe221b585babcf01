package parser

func (s *state) parseStatement() *Node {
	switch s.peek().Kind {
	case TokenPreproc:
		return s.leaf(KindPreprocLine, s.advance())
	case TokenVar:
		return s.parseVarDecl()
	case TokenIf:
		return s.parseIf()
	case TokenWhile:
		return s.parseWhile()
	case TokenFor:
		return s.parseFor()
	case TokenTry:
		return s.parseTry()
	case TokenReturn:
		return s.parseReturn()
	case TokenRaise:
		return s.parseRaise()
	case TokenBreak:
		return s.parseJump(KindBreakStmt, TokenBreak)
	case TokenContinue:
		return s.parseJump(KindContinueStmt, TokenContinue)
	case TokenGoto:
		return s.parseGoto()
	case TokenTilde:
		return s.parseLabelStmt()
	case TokenAddHandler:
		return s.parseHandler(KindAddHandlerStmt, TokenAddHandler)
	case TokenRemoveHandler:
		return s.parseHandler(KindRemoveHandlerStmt, TokenRemoveHandler)
	case TokenExecute:
		return s.parseExecute()
	}
	return s.parseExprStatement()
}

// endStatement takes the optional terminating semicolon into the statement.
func (s *state) endStatement(n *Node) *Node {
	s.accept(TokenSemicolon)
	return s.close(n)
}

func (s *state) parseVarDecl() *Node {
	n := s.open(KindVarDecl)
	s.keyword(n, TokenVar)
	for {
		spec := s.open(KindVarSpec)
		spec.add(s.parseName())
		if s.check(TokenAssign) {
			spec.add(s.operator(KindAssignOp))
			spec.add(s.parseExpr())
		}
		s.keyword(spec, TokenExport)
		n.add(s.close(spec))
		if !s.accept(TokenComma) {
			break
		}
	}
	return s.endStatement(n)
}

func (s *state) parseIf() *Node {
	n := s.open(KindIfStmt)
	s.keyword(n, TokenIf)
	n.add(s.parseExpr())
	s.expectKeyword(n, TokenThen)

	restore := s.pushStops(TokenEndIf, TokenElseIf, TokenElse)
	s.parseBody(n)
	for s.check(TokenElseIf) {
		clause := s.open(KindElseIfClause)
		s.keyword(clause, TokenElseIf)
		clause.add(s.parseExpr())
		s.expectKeyword(clause, TokenThen)
		s.parseBody(clause)
		n.add(s.close(clause))
	}
	if s.check(TokenElse) {
		clause := s.open(KindElseClause)
		s.keyword(clause, TokenElse)
		s.parseBody(clause)
		n.add(s.close(clause))
	}
	restore()

	s.expectKeyword(n, TokenEndIf)
	return s.endStatement(n)
}

func (s *state) parseWhile() *Node {
	n := s.open(KindWhileStmt)
	s.keyword(n, TokenWhile)
	n.add(s.parseExpr())
	s.parseLoopBody(n)
	return s.endStatement(n)
}

// parseFor handles both the counting loop and the for-each loop.
func (s *state) parseFor() *Node {
	n := s.open(KindForStmt)
	s.keyword(n, TokenFor)
	if s.keyword(n, TokenEach) {
		n.add(s.parseName())
		s.expectKeyword(n, TokenIn)
		n.add(s.parseExpr())
	} else {
		n.add(s.parseName())
		if s.check(TokenAssign) {
			n.add(s.operator(KindAssignOp))
		} else {
			n.add(s.missing("expected =", TokenAssign))
		}
		n.add(s.parseExpr())
		s.expectKeyword(n, TokenTo)
		n.add(s.parseExpr())
	}
	s.parseLoopBody(n)
	return s.endStatement(n)
}

func (s *state) parseLoopBody(n *Node) {
	s.expectKeyword(n, TokenDo)
	restore := s.pushStops(TokenEndDo)
	s.parseBody(n)
	restore()
	s.expectKeyword(n, TokenEndDo)
}

func (s *state) parseTry() *Node {
	n := s.open(KindTryStmt)
	s.keyword(n, TokenTry)

	restore := s.pushStops(TokenExcept, TokenEndTry)
	s.parseBody(n)
	restore()

	if s.check(TokenExcept) {
		clause := s.open(KindExceptClause)
		s.keyword(clause, TokenExcept)
		restore := s.pushStops(TokenEndTry)
		s.parseBody(clause)
		restore()
		n.add(s.close(clause))
	} else {
		n.add(s.missing("expected except", TokenExcept))
	}

	s.expectKeyword(n, TokenEndTry)
	return s.endStatement(n)
}

func (s *state) parseReturn() *Node {
	n := s.open(KindReturnStmt)
	s.keyword(n, TokenReturn)
	if canStartExpr(s.peek().Kind) {
		n.add(s.parseExpr())
	}
	return s.endStatement(n)
}

// parseRaise accepts both the bare form and the argument list form
// ВызватьИсключение("text", Category).
func (s *state) parseRaise() *Node {
	n := s.open(KindRaiseStmt)
	s.keyword(n, TokenRaise)
	switch kind := s.peek().Kind; {
	case kind == TokenLParen:
		n.add(s.parseCallArgs())
	case canStartExpr(kind):
		n.add(s.parseExpr())
	}
	return s.endStatement(n)
}

func (s *state) parseJump(kind NodeKind, kw TokenKind) *Node {
	n := s.open(kind)
	s.keyword(n, kw)
	return s.endStatement(n)
}

func (s *state) parseGoto() *Node {
	n := s.open(KindGotoStmt)
	s.keyword(n, TokenGoto)
	n.add(s.parseLabel())
	return s.endStatement(n)
}

func (s *state) parseLabelStmt() *Node {
	n := s.open(KindLabelStmt)
	n.add(s.parseLabel())
	s.expectPunct(n, TokenColon)
	return s.close(n)
}

// parseLabel parses ~Name into a single Label node.
func (s *state) parseLabel() *Node {
	if !s.check(TokenTilde) {
		return s.missing("expected label", TokenTilde)
	}
	n := s.open(KindLabel)
	s.advance()
	if !s.accept(TokenIdent) {
		n.add(s.missing("expected label name", TokenIdent))
	}
	return s.close(n)
}

func (s *state) parseHandler(kind NodeKind, kw TokenKind) *Node {
	n := s.open(kind)
	s.keyword(n, kw)
	n.add(s.parseExpr())
	s.expectPunct(n, TokenComma)
	n.add(s.parseExpr())
	return s.endStatement(n)
}

func (s *state) parseExecute() *Node {
	n := s.open(KindExecuteStmt)
	s.keyword(n, TokenExecute)
	n.add(s.parseExpr())
	return s.endStatement(n)
}

// parseExprStatement parses an assignment or a procedure call. Both start
// with a postfix expression.
func (s *state) parseExprStatement() *Node {
	n := s.open(KindCallStmt)
	target := s.parsePostfix()
	n.add(target)
	if s.check(TokenAssign) {
		n.Kind = KindAssignment
		n.add(s.operator(KindAssignOp))
		n.add(s.parseExpr())
	} else if !isCallable(target) {
		n.add(s.missing("expected assignment or call", TokenAssign, TokenLParen))
	}
	return s.endStatement(n)
}

func isCallable(n *Node) bool {
	switch n.Kind {
	case KindCallExpr, KindAwaitExpr, KindNewExpr:
		return true
	}
	return false
}
