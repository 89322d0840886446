// Package utils tem helpers de exibição do terminal.
package utils

import (
	"fmt"
	"sort"
	"strings"
)

// SliceToString lista os itens numerados sob um título.
func SliceToString[T any](label string, items []T) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "----- %s -----\n", label)

	if len(items) == 0 {
		sb.WriteString("(vazio)\n")
	} else {
		for i, item := range items {
			fmt.Fprintf(&sb, "[%d]: %v\n", i, item)
		}
	}

	sb.WriteString("--------------------\n")
	return sb.String()
}

// MapToString imprime cada chave em ordem alfabética, seguida dos itens.
func MapToString[T any](label string, groups map[string][]T) string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, "===== %s =====\n", label)
	for _, k := range keys {
		sb.WriteString(SliceToString(k, groups[k]))
	}
	return sb.String()
}
