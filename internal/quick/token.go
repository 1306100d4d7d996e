package quick

import (
	"fmt"
	"strings"
)

// Callback tokens are versioned so the wire format can evolve without
// breaking buttons attached to old messages.
const tokenVersion = "v1"

type TokenKind string

const (
	TokenMealPreset    TokenKind = "meal"
	TokenWorkoutPreset TokenKind = "workout"
	TokenAction        TokenKind = "action"
)

// Control actions carried by TokenAction tokens.
const (
	ActionManualMeal    = "manual_meal"
	ActionCustomWorkout = "custom_workout"
)

// Token identifies a preset or a control action behind an inline button.
type Token struct {
	Kind TokenKind
	ID   string
}

func (t Token) Encode() string {
	return fmt.Sprintf("%s:%s:%s", tokenVersion, t.Kind, t.ID)
}

func DecodeToken(s string) (Token, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Token{}, fmt.Errorf("malformed callback token %q", s)
	}
	if parts[0] != tokenVersion {
		return Token{}, fmt.Errorf("unsupported token version %q", parts[0])
	}
	kind := TokenKind(parts[1])
	switch kind {
	case TokenMealPreset, TokenWorkoutPreset, TokenAction:
	default:
		return Token{}, fmt.Errorf("unknown token kind %q", parts[1])
	}
	return Token{Kind: kind, ID: parts[2]}, nil
}
