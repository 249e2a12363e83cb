package engine

import (
	"fmt"
	"strconv"
)

// MaterialNotFoundError reports a catalog miss. It carries the full list of
// available materials so callers can show valid alternatives.
type MaterialNotFoundError struct {
	Material  string
	Thickness float64
	Color     string
	Available []string
}

func (e *MaterialNotFoundError) Error() string {
	grosor := strconv.FormatFloat(e.Thickness, 'f', -1, 64)
	return fmt.Sprintf("Material no encontrado: %s %smm %s", e.Material, grosor, e.Color)
}

// ValidationError reports an upstream payload that is empty or not an
// object at all. Deeper structural gaps never produce it; they degrade to
// defaults inside the normalizer.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
