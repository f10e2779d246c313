package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Día del Niño", "dia-del-nino"},
		{"Formacion", "formacion"},
		{"  Hello,   World!  ", "hello-world"},
		{"Ça va -- très_bien", "ca-va-tres-bien"},
		{"2024 Season", "2024-season"},
		{"---", ""},
		{"", ""},
		{"日本", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	for _, in := range []string{"Día del Niño", "A_B c", "équipe--Ñ", "x", "!!"} {
		once := Make(in)
		assert.Equal(t, once, Make(once), "input %q", in)
	}
}
