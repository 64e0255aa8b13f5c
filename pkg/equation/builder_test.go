package equation

import (
	"testing"

	"github.com/consensys/go-absint/pkg/ast"
	"github.com/consensys/go-absint/pkg/syntax"
	"github.com/consensys/go-absint/pkg/util/assert"
	"github.com/consensys/go-absint/pkg/util/source"
)

func Test_Builder_01(t *testing.T) {
	program := buildString(t, "int x; x = 3;")
	//
	assert.Equal(t, 2, len(program.Actions))
	assert.Equal(t, uint(3), program.Size)
	//
	decl := program.Actions[0].(*Declaration)
	assert.Equal(t, "x", decl.Variable)
	assert.Equal(t, uint(0), decl.In())
	assert.Equal(t, uint(1), decl.Out())
	//
	assign := program.Actions[1].(*Assignment)
	assert.Equal(t, "x", assign.Variable)
	assert.Equal(t, uint(1), assign.In())
	assert.Equal(t, uint(2), assign.Out())
	assert.False(t, assign.Insert)
}

func Test_Builder_02(t *testing.T) {
	// A pre-condition compiles to an inserting assignment.
	program := buildString(t, "/*!npre 0 <= x <= 10*/")
	//
	assert.Equal(t, 1, len(program.Actions))
	//
	assign := program.Actions[0].(*Assignment)
	assert.Equal(t, "x", assign.Variable)
	assert.True(t, assign.Insert)
	//
	value := assign.Value.(*Const)
	assert.Equal(t, "[0, 10]", value.Value.String())
}

func Test_Builder_03(t *testing.T) {
	// A post-condition compiles to one assertion per comparison.
	program := buildString(t, "int x; /*!npost -100 <= x <= 104*/")
	//
	assert.Equal(t, 3, len(program.Actions))
	//
	first := program.Actions[1].(*Assertion)
	second := program.Actions[2].(*Assertion)
	assert.Equal(t, uint(1), first.In())
	assert.Equal(t, uint(2), first.Out())
	assert.Equal(t, uint(2), second.In())
	assert.Equal(t, uint(3), second.Out())
	// Each assertion is keyed on its own syntax node.
	assert.True(t, first.Node != second.Node)
}

func Test_Builder_04(t *testing.T) {
	// If with an else branch.
	program := buildString(t, "int x; if (x < 5) { x = 1; } else { x = 2; }")
	//
	assert.Equal(t, 6, len(program.Actions))
	assert.Equal(t, uint(7), program.Size)
	//
	thenFilter := program.Actions[1].(*Filter)
	assert.Equal(t, ast.LT, thenFilter.Op)
	assert.Equal(t, uint(1), thenFilter.In())
	assert.Equal(t, uint(2), thenFilter.Out())
	//
	elseFilter := program.Actions[3].(*Filter)
	assert.Equal(t, ast.GTEQ, elseFilter.Op)
	assert.Equal(t, uint(1), elseFilter.In())
	assert.Equal(t, uint(4), elseFilter.Out())
	//
	join := program.Actions[5].(*Join)
	assert.Equal(t, []uint{3, 5}, join.Ins())
	assert.Equal(t, uint(6), join.Out())
}

func Test_Builder_05(t *testing.T) {
	// If without an else branch joins the pre-state directly.
	program := buildString(t, "int x; if (x < 5) { x = 1; }")
	//
	assert.Equal(t, 4, len(program.Actions))
	//
	join := program.Actions[3].(*Join)
	assert.Equal(t, []uint{1, 3}, join.Ins())
	assert.Equal(t, uint(4), join.Out())
}

func Test_Builder_06(t *testing.T) {
	// While loops back-patch the reserved loop-head join.
	program := buildString(t, "int x; x = 0; while (x < 10) { x = x + 1; }")
	//
	assert.Equal(t, 6, len(program.Actions))
	assert.Equal(t, uint(7), program.Size)
	//
	join := program.Actions[2].(*Join)
	assert.Equal(t, []uint{2, 5}, join.Ins())
	assert.Equal(t, uint(3), join.Out())
	//
	entry := program.Actions[3].(*Filter)
	assert.Equal(t, ast.LT, entry.Op)
	assert.Equal(t, uint(3), entry.In())
	assert.Equal(t, uint(4), entry.Out())
	//
	exit := program.Actions[5].(*Filter)
	assert.Equal(t, ast.GTEQ, exit.Op)
	assert.Equal(t, uint(3), exit.In())
	assert.Equal(t, uint(6), exit.Out())
}

func Test_Builder_07(t *testing.T) {
	// Empty-body loops keep their indices consistent.
	program := buildString(t, "int x; while (x < 10) { }")
	//
	assert.Equal(t, 4, len(program.Actions))
	assert.Equal(t, uint(5), program.Size)
	//
	join := program.Actions[1].(*Join)
	assert.Equal(t, []uint{1, 3}, join.Ins())
	assert.Equal(t, uint(2), join.Out())
	//
	entry := program.Actions[2].(*Filter)
	assert.Equal(t, uint(2), entry.In())
	assert.Equal(t, uint(3), entry.Out())
	//
	exit := program.Actions[3].(*Filter)
	assert.Equal(t, uint(2), exit.In())
	assert.Equal(t, uint(4), exit.Out())
}

func Test_Builder_08(t *testing.T) {
	// Back-to-back loops chain through the first loop's exit filter.
	program := buildString(t, "int x; while (x < 5) { } while (x < 7) { }")
	//
	assert.Equal(t, 7, len(program.Actions))
	assert.Equal(t, uint(8), program.Size)
	// First loop
	join := program.Actions[1].(*Join)
	assert.Equal(t, []uint{1, 3}, join.Ins())
	assert.Equal(t, uint(2), join.Out())
	//
	exit := program.Actions[3].(*Filter)
	assert.Equal(t, uint(2), exit.In())
	assert.Equal(t, uint(4), exit.Out())
	// Second loop reads the first one's exit state.
	join = program.Actions[4].(*Join)
	assert.Equal(t, []uint{4, 6}, join.Ins())
	assert.Equal(t, uint(5), join.Out())
	//
	exit = program.Actions[6].(*Filter)
	assert.Equal(t, uint(5), exit.In())
	assert.Equal(t, uint(7), exit.Out())
}

func Test_Builder_09(t *testing.T) {
	// Branch conditions must compare a variable against a constant.
	assert.Panics(t, func() {
		buildString(t, "int x; int y; if (x < y) { }")
	})
}

func Test_Builder_10(t *testing.T) {
	// Nested arithmetic compiles into an owning expression tree.
	program := buildString(t, "int x; x = 1 + 2 * x;")
	//
	assign := program.Actions[1].(*Assignment)
	add := assign.Value.(*BinExpr)
	assert.Equal(t, ast.ADD, add.Op)
	//
	mul := add.Right.(*BinExpr)
	assert.Equal(t, ast.MUL, mul.Op)
	//
	variable := mul.Right.(*Var)
	assert.Equal(t, "x", variable.Name)
}

// ==================================================================
// Framework
// ==================================================================

func buildString(t *testing.T, input string) Program {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test", []byte(input))
	root, errs := syntax.Parse(srcfile)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Message())
	}
	//
	return Build(root)
}
