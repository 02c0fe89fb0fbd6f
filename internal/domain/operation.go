package domain

import (
	"fmt"
	"strings"
)

// Operation is one of the four column-arithmetic exercise kinds.
type Operation string

// Supported operations.
const (
	OperationAddition       Operation = "addition"
	OperationSubtraction    Operation = "subtraction"
	OperationMultiplication Operation = "multiplication"
	OperationDivision       Operation = "division"
)

// Operations lists every supported operation in menu order.
var Operations = []Operation{
	OperationAddition,
	OperationSubtraction,
	OperationMultiplication,
	OperationDivision,
}

// ParseOperation parses an operation name, accepting the usual symbols.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "addition", "add", "+":
		return OperationAddition, nil
	case "subtraction", "sub", "-":
		return OperationSubtraction, nil
	case "multiplication", "mul", "x", "*":
		return OperationMultiplication, nil
	case "division", "div", "/":
		return OperationDivision, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperation, s)
	}
}

// Symbol returns the operator sign used in hints and reports.
func (o Operation) Symbol() string {
	switch o {
	case OperationAddition:
		return "+"
	case OperationSubtraction:
		return "−"
	case OperationMultiplication:
		return "×"
	case OperationDivision:
		return "÷"
	default:
		return "?"
	}
}

// Valid reports whether o is a supported operation.
func (o Operation) Valid() bool {
	switch o {
	case OperationAddition, OperationSubtraction, OperationMultiplication, OperationDivision:
		return true
	default:
		return false
	}
}

// Difficulty selects operand ranges for generated exercises.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty name; blank means medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
}
