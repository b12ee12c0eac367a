package utils

import "strings"

type HasValue interface {
	Value() string
}

func FormatEnumTypes[T HasValue](enums []T) string {
	mapped := []string{}
	for _, enum := range enums {
		mapped = append(mapped, enum.Value())
	}
	return "[" + strings.Join(mapped, ", ") + "]"
}
