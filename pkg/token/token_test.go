package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/pkg/token"
)

func TestNew_FormatoDelToken(t *testing.T) {
	tok := token.New(token.PrefixMovement)

	assert.True(t, strings.HasPrefix(tok, "MOV-"), "debe llevar el prefijo MOV-")
	assert.Len(t, tok, len("MOV-")+8, "sufijo de 8 caracteres hex")
	assert.Equal(t, strings.ToUpper(tok), tok, "el token va en mayúsculas")
}

func TestNew_TokensDistintos(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := token.NewProductID()
		assert.False(t, seen[tok], "token repetido: %s", tok)
		seen[tok] = true
	}
}

func TestNew_PrefijosPorTipo(t *testing.T) {
	assert.True(t, strings.HasPrefix(token.NewProductID(), "PRD-"))
	assert.True(t, strings.HasPrefix(token.NewLocationID(), "LOC-"))
	assert.True(t, strings.HasPrefix(token.NewMovementID(), "MOV-"))
}
