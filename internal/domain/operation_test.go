package domain

import (
	"errors"
	"testing"
)

func TestParseOperation(t *testing.T) {
	t.Parallel()

	tests := map[string]Operation{
		"addition":       OperationAddition,
		"+":              OperationAddition,
		" SUB ":          OperationSubtraction,
		"x":              OperationMultiplication,
		"multiplication": OperationMultiplication,
		"/":              OperationDivision,
		"div":            OperationDivision,
	}
	for in, want := range tests {
		got, err := ParseOperation(in)
		if err != nil {
			t.Errorf("ParseOperation(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseOperation(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseOperation("modulo"); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Expected error %v, got %v", ErrInvalidOperation, err)
	}
}

func TestOperationSymbolAndValid(t *testing.T) {
	t.Parallel()

	symbols := []string{"+", "−", "×", "÷"}
	for i, op := range Operations {
		if !op.Valid() {
			t.Errorf("%s should be valid", op)
		}
		if op.Symbol() != symbols[i] {
			t.Errorf("%s symbol = %s, want %s", op, op.Symbol(), symbols[i])
		}
	}
	if Operation("modulo").Valid() {
		t.Error("modulo should not be valid")
	}
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	if d, err := ParseDifficulty(""); err != nil || d != DifficultyMedium {
		t.Errorf("blank difficulty = %s, %v; want medium", d, err)
	}
	if d, err := ParseDifficulty("Hard"); err != nil || d != DifficultyHard {
		t.Errorf("Hard = %s, %v; want hard", d, err)
	}
	if _, err := ParseDifficulty("insane"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("Expected error %v, got %v", ErrInvalidDifficulty, err)
	}
}
