package hksl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hksl-lang/hksl/internal/ast"
)

func TestCompile_SuccessReturnsProgramAndNoErrors(t *testing.T) {
	result := Compile(`
		fn square(x: float) -> float {
			return x * x;
		}
		fn main() {
			let y: float = square(2.0);
		}
	`, "square.hksl")

	require.Empty(t, result.Errors)
	require.NotNil(t, result.Program)
	assert.Len(t, result.Program.Statements, 2)
}

func TestCompile_FailureReturnsErrorsAndNoProgram(t *testing.T) {
	result := Compile("fn main() { return undeclared; }", "bad.hksl")

	require.NotEmpty(t, result.Errors)
	assert.Nil(t, result.Program)
}

func TestCompile_DumpOfResultingProgramIsDeterministic(t *testing.T) {
	source := "fn main() { let a: float = 1.0; }"
	first := Compile(source, "a.hksl")
	second := Compile(source, "a.hksl")

	require.Empty(t, first.Errors)
	require.Empty(t, second.Errors)
	assert.Equal(t, ast.Dump(first.Program), ast.Dump(second.Program))
}
