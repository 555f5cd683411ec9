package model

import (
	"fmt"
	"strings"
)

// Dimension is a named way of extracting a label from a time log, used for
// hierarchy levels and component lists.
type Dimension string

const (
	DimensionNamespace Dimension = "NAMESPACE"
	DimensionProject   Dimension = "PROJECT"
	DimensionIssue     Dimension = "ISSUE"
	DimensionUser      Dimension = "USER"
	DimensionProduct   Dimension = "PRODUCT"
	DimensionLabel     Dimension = "LABEL"
)

// Dimensions lists every selectable dimension in display order.
var Dimensions = []Dimension{
	DimensionNamespace,
	DimensionProject,
	DimensionIssue,
	DimensionUser,
	DimensionProduct,
	DimensionLabel,
}

// ValidateDimension returns an error if d is not a recognized dimension.
func ValidateDimension(d Dimension) error {
	for _, v := range Dimensions {
		if d == v {
			return nil
		}
	}
	return fmt.Errorf("invalid dimension %q: must be one of %v", d, Dimensions)
}

// ParseDimension accepts any letter case ("project", "PROJECT") and returns
// the canonical Dimension.
func ParseDimension(input string) (Dimension, error) {
	d := Dimension(strings.ToUpper(strings.TrimSpace(input)))
	if err := ValidateDimension(d); err != nil {
		return "", err
	}
	return d, nil
}

// ParseDimensions parses an ordered list of dimension names. At least one is
// required; repeats are allowed and produce repeated tree levels.
func ParseDimensions(inputs []string) ([]Dimension, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one dimension is required")
	}
	dims := make([]Dimension, 0, len(inputs))
	for _, in := range inputs {
		d, err := ParseDimension(in)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// Color returns a color name string suitable for terminal rendering.
func (d Dimension) Color() string {
	switch d {
	case DimensionNamespace:
		return "magenta"
	case DimensionProject:
		return "blue"
	case DimensionIssue:
		return "white"
	case DimensionUser:
		return "green"
	case DimensionProduct:
		return "yellow"
	case DimensionLabel:
		return "gray"
	default:
		return "white"
	}
}
