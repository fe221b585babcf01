package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"empty module",
			"",
			"Module",
		},
		{
			"procedure",
			"procedure Test()\nendProcedure",
			"Module(ProcedureDef(procedure,Identifier,ParamList,endProcedure))",
		},
		{
			"function with parameters",
			"function F(val a, b = 1) export\n  return a + b;\nendFunction",
			"Module(FunctionDef(function,Identifier,ParamList(Param(val,Identifier),Param(Identifier,AssignOp,Number)),export," +
				"ReturnStmt(return,AddExpr(Identifier,ArithOp,Identifier)),endFunction))",
		},
		{
			"assignment",
			"a = 1;",
			"Module(Assignment(Identifier,AssignOp,Number))",
		},
		{
			"if chain",
			"if a = 1 and not b then\n  x();\nelseIf c then\nelse\n  y = 2;\nendIf;",
			"Module(IfStmt(if,AndExpr(CompareExpr(Identifier,CompareOp,Number),and,UnaryExpr(not,Identifier)),then," +
				"CallStmt(CallExpr(Identifier,CallArgs)),ElseIfClause(elseIf,Identifier,then)," +
				"ElseClause(else,Assignment(Identifier,AssignOp,Number)),endIf))",
		},
		{
			"or binds looser than and",
			"x = a or b and c;",
			"Module(Assignment(Identifier,AssignOp,OrExpr(Identifier,or,AndExpr(Identifier,and,Identifier))))",
		},
		{
			"counting loop",
			"for i = 1 to 10 do\n  break;\nendDo;",
			"Module(ForStmt(for,Identifier,AssignOp,Number,to,Number,do,BreakStmt(break),endDo))",
		},
		{
			"for each loop",
			"for each item in list do\n  continue;\nendDo;",
			"Module(ForStmt(for,each,Identifier,in,Identifier,do,ContinueStmt(continue),endDo))",
		},
		{
			"while loop",
			"while true do\nendDo;",
			"Module(WhileStmt(while,Literal(true),do,endDo))",
		},
		{
			"try",
			"try\n  raise \"x\";\nexcept\n  raise;\nendTry;",
			"Module(TryStmt(try,RaiseStmt(raise,String),ExceptClause(except,RaiseStmt(raise)),endTry))",
		},
		{
			"raise with arguments",
			"raise(\"x\", Category);",
			"Module(RaiseStmt(raise,CallArgs(String,Identifier)))",
		},
		{
			"new",
			"x = new Structure(\"a\", 1);",
			"Module(Assignment(Identifier,AssignOp,NewExpr(new,TypeName,CallArgs(String,Number))))",
		},
		{
			"new without type",
			"x = new(\"Array\");",
			"Module(Assignment(Identifier,AssignOp,NewExpr(new,CallArgs(String))))",
		},
		{
			"ternary",
			"x = ?(a > 0, a.b[1], -1);",
			"Module(Assignment(Identifier,AssignOp,TernaryExpr(CompareExpr(Identifier,CompareOp,Number)," +
				"IndexAccess(MemberAccess(Identifier,Identifier),Number),UnaryExpr(ArithOp,Number))))",
		},
		{
			"keyword as member name",
			"Query.execute();",
			"Module(CallStmt(CallExpr(MemberAccess(Identifier,Identifier),CallArgs)))",
		},
		{
			"precedence",
			"x = a * (b + c) % 2;",
			"Module(Assignment(Identifier,AssignOp,MulExpr(MulExpr(Identifier,ArithOp,ParenExpr(AddExpr(Identifier,ArithOp,Identifier))),ArithOp,Number)))",
		},
		{
			"omitted argument",
			"f(, 1);",
			"Module(CallStmt(CallExpr(Identifier,CallArgs(Number))))",
		},
		{
			"goto and label",
			"goto ~L;\n~L:\n",
			"Module(GotoStmt(goto,Label),LabelStmt(Label))",
		},
		{
			"handlers",
			"addHandler a.b, c;\nremoveHandler a.b, c;",
			"Module(AddHandlerStmt(addHandler,MemberAccess(Identifier,Identifier),Identifier)," +
				"RemoveHandlerStmt(removeHandler,MemberAccess(Identifier,Identifier),Identifier))",
		},
		{
			"execute",
			"execute(code);",
			"Module(ExecuteStmt(execute,ParenExpr(Identifier)))",
		},
		{
			"preprocessor and module variables",
			"#Region R\nvar a, b export;\n#EndRegion",
			"Module(PreprocLine,VarDecl(var,VarSpec(Identifier),VarSpec(Identifier,export)),PreprocLine)",
		},
		{
			"annotation and async",
			"&AtServer\nasync procedure P()\n  await F();\nendProcedure",
			"Module(ProcedureDef(Annotation(AnnotationType),async,procedure,Identifier,ParamList," +
				"CallStmt(AwaitExpr(await,CallExpr(Identifier,CallArgs))),endProcedure))",
		},
		{
			"multiline string",
			"s = \"one\n  |two\n  |three\";",
			"Module(Assignment(Identifier,AssignOp,MultilineString(MultilineStringStart,MultilineStringContinue,MultilineStringContinue)))",
		},
		{
			"date",
			"d = '20240101';",
			"Module(Assignment(Identifier,AssignOp,Date))",
		},
		{
			"literals",
			"x = f(true, false, undefined, null);",
			"Module(Assignment(Identifier,AssignOp,CallExpr(Identifier,CallArgs(Literal(true),Literal(false),Literal(undefined),Literal(null)))))",
		},
		{
			"local variables",
			"procedure P()\n  var x;\n  x = 1;\nendProcedure",
			"Module(ProcedureDef(procedure,Identifier,ParamList,VarDecl(var,VarSpec(Identifier)),Assignment(Identifier,AssignOp,Number),endProcedure))",
		},
		{
			"stray semicolons",
			";;a = 1;;",
			"Module(Assignment(Identifier,AssignOp,Number))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New().Parse(tt.input)
			if got := tree.String(); got != tt.want {
				t.Errorf("Parse(%q) =\n  %s\nwant\n  %s", tt.input, got, tt.want)
			}
			if tree.HasError() {
				t.Errorf("Parse(%q) has errors:\n%s", tt.input, tree.Root.Format(true))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"missing expression",
			"procedure P()\n  a = ;\nendProcedure",
			"Module(ProcedureDef(procedure,Identifier,ParamList,Assignment(Identifier,AssignOp,⚠),endProcedure))",
		},
		{
			"unterminated string",
			"s = \"abc",
			"Module(Assignment(Identifier,AssignOp,String(⚠)))",
		},
		{
			"unterminated multiline string",
			"s = \"abc\n|def",
			"Module(Assignment(Identifier,AssignOp,MultilineString(MultilineStringStart,MultilineStringContinue,⚠)))",
		},
		{
			"missing end of procedure",
			"procedure P()\n  a = 1;",
			"Module(ProcedureDef(procedure,Identifier,ParamList,Assignment(Identifier,AssignOp,Number),⚠))",
		},
		{
			"unexpected token",
			") a = 1;",
			"Module(⚠,Assignment(Identifier,AssignOp,Number))",
		},
		{
			"stray end keyword",
			"endIf;",
			"Module(⚠)",
		},
		{
			"expression without effect",
			"a;",
			"Module(CallStmt(Identifier,⚠))",
		},
		{
			"unfinished if before a procedure",
			"if a then\nprocedure P()\nendProcedure",
			"Module(IfStmt(if,Identifier,then,⚠),ProcedureDef(procedure,Identifier,ParamList,endProcedure))",
		},
		{
			"missing parameter list",
			"procedure P\nendProcedure",
			"Module(ProcedureDef(procedure,Identifier,⚠,endProcedure))",
		},
		{
			"stray token in body",
			"procedure P()\n  ) x();\nendProcedure",
			"Module(ProcedureDef(procedure,Identifier,ParamList,⚠,CallStmt(CallExpr(Identifier,CallArgs)),endProcedure))",
		},
		{
			"continuation outside string",
			"x = |abc\";",
			"Module(Assignment(Identifier,AssignOp,⚠))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New().Parse(tt.input)
			if got := tree.String(); got != tt.want {
				t.Errorf("Parse(%q) =\n  %s\nwant\n  %s", tt.input, got, tt.want)
			}
			if !tree.HasError() {
				t.Errorf("Parse(%q) reported no errors", tt.input)
			}
		})
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"procedure",
		"procedure (",
		"if",
		"for each",
		"x = ?(",
		"x = new",
		"&",
		"~",
		"a.b.",
		"a[",
		"\"",
		"'",
		"async",
		"endProcedure endFunction endDo",
		"f(,,,",
		"))))((((",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tree := New().Parse(input)
			if tree.Root.From != 0 || tree.Root.To != len(input) {
				t.Errorf("root span = %d..%d, want 0..%d", tree.Root.From, tree.Root.To, len(input))
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	src := sampleModule(20)
	p := New()
	first := p.Parse(src)
	second := p.Parse(src)
	if first.String() != second.String() {
		t.Error("two parses of the same text differ")
	}
	if first.Root.Format(true) != second.Root.Format(true) {
		t.Error("two parses of the same text differ in positions")
	}
}

func TestParseSpans(t *testing.T) {
	src := "a = 1;\nb = 2;"
	tree := New().Parse(src)
	stmts := tree.Root.Children
	if len(stmts) != 2 {
		t.Fatalf("got %d statements", len(stmts))
	}
	if got := stmts[0].Text(src); got != "a = 1;" {
		t.Errorf("first statement text = %q", got)
	}
	if got := stmts[1].Text(src); got != "b = 2;" {
		t.Errorf("second statement text = %q", got)
	}
	if tree.Length() != len(src) {
		t.Errorf("Length() = %d", tree.Length())
	}
}

func TestParseComments(t *testing.T) {
	src := "// header\nprocedure P()\n  // inside\n  a = 1; // trailing\nendProcedure"
	tree := New(WithComments()).Parse(src)
	want := "Module(Comment,ProcedureDef(procedure,Identifier,ParamList,Comment,Assignment(Identifier,AssignOp,Number),Comment,endProcedure))"
	if got := tree.String(); got != want {
		t.Errorf("Parse() =\n  %s\nwant\n  %s", got, want)
	}

	if got := New().Parse(src).String(); strings.Contains(got, "Comment") {
		t.Errorf("comments kept without WithComments: %s", got)
	}
}

func TestConfigure(t *testing.T) {
	base := New()
	upper := func(text string) TokenKind {
		return LookupKeyword(strings.ToLower(text[:1]) + text[1:])
	}
	custom := base.Configure(WithSpecializer(TokenIdent, upper))

	if len(base.Specializers()) != 1 || len(custom.Specializers()) != 1 {
		t.Fatal("expected exactly one specializer")
	}
	src := "Procedure P()\nEndProcedure"
	if base.Parse(src).String() == custom.Parse(src).String() {
		t.Error("Configure() should not change the original parser")
	}
	if got := custom.Parse(src).String(); got != "Module(ProcedureDef(procedure,Identifier,ParamList,endProcedure))" {
		t.Errorf("custom parse = %s", got)
	}

	specs := base.Specializers()
	delete(specs, TokenIdent)
	if len(base.Specializers()) != 1 {
		t.Error("Specializers() should return a copy")
	}
}

func TestGrammar(t *testing.T) {
	g, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar() error: %v", err)
	}
	for _, name := range []string{"Module", "ProcedureDef", "IfStmt", "Expr", "identifier", "string"} {
		if g[name] == nil {
			t.Errorf("grammar has no production %s", name)
		}
	}
	for k := TokenAsync; k <= TokenNull; k++ {
		if !strings.Contains(GrammarSource(), fmt.Sprintf("%q", k.String())) {
			t.Errorf("grammar does not mention keyword %s", k)
		}
	}
}

// sampleModule returns a module with n procedures.
func sampleModule(n int) string {
	var sb strings.Builder
	sb.WriteString("var counter export;\n\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "procedure Step%d(val a, b = %d) export\n", i, i)
		sb.WriteString("  // keep going\n")
		fmt.Fprintf(&sb, "  if a > %d then\n", i)
		sb.WriteString("    counter = counter + a * b;\n")
		sb.WriteString("  elseIf a = 0 then\n")
		sb.WriteString("    raise \"zero\";\n")
		sb.WriteString("  endIf;\n")
		sb.WriteString("  for each item in b do\n")
		sb.WriteString("    item.Done = true;\n")
		sb.WriteString("  endDo;\n")
		sb.WriteString("  s = \"first\n  |second\";\n")
		sb.WriteString("endProcedure\n\n")
	}
	return sb.String()
}
