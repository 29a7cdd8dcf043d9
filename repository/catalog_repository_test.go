package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalizeWords(t *testing.T) {
	tests := map[string]string{
		"":                        "",
		"collares":                "Collares",
		"ROPA  de invierno":       "Ropa De Invierno",
		"ñandú":                   "Ñandú",
		" accesorios para gatos ": "Accesorios Para Gatos",
	}
	for in, want := range tests {
		assert.Equal(t, want, capitalizeWords(in), in)
	}
}
