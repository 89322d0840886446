package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceToString(t *testing.T) {
	got := SliceToString("Lista", []string{"cureta", "lamina-10"})
	assert.Equal(t, "----- Lista -----\n[0]: cureta\n[1]: lamina-10\n--------------------\n", got)

	assert.Contains(t, SliceToString[int]("Nada", nil), "(vazio)")
}

func TestMapToString_SortedKeys(t *testing.T) {
	got := MapToString("Mesa", map[string][]string{
		"sintese": {"porta-agulha"},
		"dierese": {},
	})
	assert.Less(t, strings.Index(got, "dierese"), strings.Index(got, "sintese"))
	assert.Contains(t, got, "[0]: porta-agulha")
}
