package primitive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown conversion category")

type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // number <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false, 1, 0 and the empty string
	CategoryDatetime                              // string(RFC3339Nano) -> time.Time
	CategoryDuration                              // string(2h45m) -> time.Duration

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	conversionPairs = map[CategoryEnum]map[ConversionPair]struct{}{
		CategorySafeNumber:   {},
		CategoryUnsafeNumber: {},
		CategoryTextNumber:   {},
		CategoryNumericBool:  {},
		CategoryTextualBool: {
			{KindString, KindBool}: {},
			{KindBool, KindString}: {},
		},
		CategoryDatetime: {
			{KindString, KindTime}: {},
		},
		CategoryDuration: {
			{KindString, KindDuration}: {},
		},
	}

	for from := KindEnum(1); int(from) < KindTotal; from++ {
		if !from.IsNumber() {
			continue
		}

		conversionPairs[CategoryTextNumber][ConversionPair{from, KindString}] = struct{}{}
		conversionPairs[CategoryTextNumber][ConversionPair{KindString, from}] = struct{}{}
		conversionPairs[CategoryNumericBool][ConversionPair{from, KindBool}] = struct{}{}
		conversionPairs[CategoryNumericBool][ConversionPair{KindBool, from}] = struct{}{}

		for to := KindEnum(1); int(to) < KindTotal; to++ {
			if !to.IsNumber() {
				continue
			}

			category := CategoryUnsafeNumber
			if safeNumber(from, to) {
				category = CategorySafeNumber
			}

			conversionPairs[category][ConversionPair{from, to}] = struct{}{}
		}
	}
}

// Allows reports whether converting from one kind into another is permitted by the allowed categories.
// Identical kinds are always permitted.
func Allows(allowed CategoryEnum, from, to KindEnum) bool {
	if from == to {
		return true
	}

	pair := ConversionPair{from, to}
	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if allowed&category == 0 {
			continue
		}

		if _, ok := conversionPairs[category][pair]; ok {
			return true
		}
	}

	return false
}

// CategoryOf returns the category a conversion pair belongs to, or CategoryNone when no category covers it.
func CategoryOf(from, to KindEnum) CategoryEnum {
	pair := ConversionPair{from, to}
	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if _, ok := conversionPairs[category][pair]; ok {
			return category
		}
	}

	return CategoryNone
}

func safeNumber(from, to KindEnum) bool {
	switch {
	case from == to:
		return true
	case from.IsFloat():
		return from == KindFloat32 && to == KindFloat64
	case to.IsFloat():
		mantissa := 24
		if to == KindFloat64 {
			mantissa = 53
		}
		return from.bits() < mantissa
	case from.IsSigned() && to.IsSigned(), from.IsUnsigned() && to.IsUnsigned():
		return from.bits() <= to.bits()
	case from.IsUnsigned() && to.IsSigned():
		return from.bits() < to.bits()
	default:
		return false
	}
}

func (k KindEnum) bits() int {
	switch k {
	case KindInt, KindUint:
		return strconv.IntSize
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	default:
		panic("only numeric kinds have a meaningful bit size, but requested for: " + k.String())
	}
}

var categoryNames = map[string]CategoryEnum{
	"safe-number":   CategorySafeNumber,
	"unsafe-number": CategoryUnsafeNumber,
	"text-number":   CategoryTextNumber,
	"numeric-bool":  CategoryNumericBool,
	"textual-bool":  CategoryTextualBool,
	"datetime":      CategoryDatetime,
	"duration":      CategoryDuration,
	"all":           CategoryAll,
	"none":          CategoryNone,
}

// ParseCategories combines categories given by name, e.g. "text-number" or "all".
func ParseCategories(names ...string) (CategoryEnum, error) {
	var out CategoryEnum

	for _, name := range names {
		c, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return CategoryNone, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}

		out |= c
	}

	return out, nil
}
