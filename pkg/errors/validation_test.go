package errors

import (
	"math"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Maule", false},
		{"valid with accents", "Ñuble", false},
		{"valid with apostrophe", "Libertador General Bernardo O'Higgins", false},
		{"valid with typographic quote", "O’Higgins", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateMagnitude(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 16.87, false},
		{"large", 7400741, false},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
		{"negative inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMagnitude("area", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMagnitude(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive("density", 0); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidatePositive(0) = %v, want INVALID_INPUT", err)
	}
	if err := ValidatePositive("density", 0.5); err != nil {
		t.Errorf("ValidatePositive(0.5) = %v, want nil", err)
	}
}
