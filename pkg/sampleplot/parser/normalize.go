package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
)

// NotSampled marks a cell where no sample was taken.
const NotSampled = "NS"

// NonDetectPrefix marks a result below the detection threshold.
const NonDetectPrefix = "<"

// Rule is one coercion step. Rules never panic; a failing rule returns an error.
type Rule func(models.Value) (models.Value, error)

// Stage is a named rule within a chain.
type Stage struct {
	Name string
	Rule Rule
}

// ScalarChain turns a raw measurement cell into a Number or Absent.
// Unit stripping and marker substitution must precede float parsing.
var ScalarChain = []Stage{
	{Name: "strip_units", Rule: StripUnits},
	{Name: "not_sampled_to_absent", Rule: NotSampledToAbsent},
	{Name: "non_detect_to_zero", Rule: NonDetectToZero},
	{Name: "to_float", Rule: ToFloat},
}

// DateChain turns a raw header cell into a Timestamp or Absent.
var DateChain = []Stage{
	{Name: "to_timestamp", Rule: ToTimestamp},
}

// LabelChain keeps header cells as text labels.
var LabelChain = []Stage{
	{Name: "to_label", Rule: ToLabel},
}

// Run applies a chain in order. On failure it returns Absent and an error naming the stage.
func Run(chain []Stage, v models.Value) (models.Value, error) {
	for _, stage := range chain {
		next, err := stage.Rule(v)
		if err != nil {
			return models.Absent(), fmt.Errorf("%s: %w", stage.Name, err)
		}
		v = next
	}
	return v, nil
}

// Normalize applies ScalarChain.
func Normalize(v models.Value) (models.Value, error) {
	return Run(ScalarChain, v)
}

// NormalizeDate applies DateChain.
func NormalizeDate(v models.Value) (models.Value, error) {
	return Run(DateChain, v)
}

// StripUnits keeps the first whitespace-separated token of text ("12.3 mg/L" -> "12.3").
func StripUnits(v models.Value) (models.Value, error) {
	if v.Kind != models.KindText {
		return v, nil
	}
	fields := strings.Fields(v.Str)
	if len(fields) == 0 {
		return models.Absent(), nil
	}
	return models.Text(fields[0]), nil
}

// NotSampledToAbsent maps the NS marker to Absent.
func NotSampledToAbsent(v models.Value) (models.Value, error) {
	if v.Kind == models.KindText && v.Str == NotSampled {
		return models.Absent(), nil
	}
	return v, nil
}

// NonDetectToZero maps below-threshold text such as "<2" to zero.
func NonDetectToZero(v models.Value) (models.Value, error) {
	if v.Kind == models.KindText && strings.HasPrefix(v.Str, NonDetectPrefix) {
		return models.Number(0), nil
	}
	return v, nil
}

// ToFloat parses text as a float64. Numbers and Absent pass through.
func ToFloat(v models.Value) (models.Value, error) {
	switch v.Kind {
	case models.KindAbsent, models.KindNumber:
		return v, nil
	case models.KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return models.Absent(), fmt.Errorf("%w: %q", ErrNumericParse, v.Str)
		}
		return models.Number(f), nil
	}
	return models.Absent(), fmt.Errorf("%w: unexpected %s value %q", ErrNumericParse, v.Kind, v.String())
}

// ToLabel keeps header cells as trimmed text; timestamps use their normalized form.
func ToLabel(v models.Value) (models.Value, error) {
	switch v.Kind {
	case models.KindAbsent:
		return v, nil
	case models.KindText:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return models.Absent(), nil
		}
		return models.Text(s), nil
	case models.KindTimestamp:
		return models.Text(normalizeTime(v.Time).Format(models.TimestampLayout)), nil
	}
	return models.Text(v.String()), nil
}
