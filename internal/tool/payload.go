package tool

import (
	"fmt"
	"math"
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// Payload is a decoded JSON object passed to a tool.
type Payload map[string]any

// present reports whether key is set to a non-null value.
func (p Payload) present(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the string at key, or "" when absent.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// OptString returns a pointer to the string at key, or nil when absent.
func (p Payload) OptString(key string) *string {
	s, ok := p[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// OptBool returns a pointer to the bool at key, or nil when absent.
func (p Payload) OptBool(key string) *bool {
	b, ok := p[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

// OptInt returns the number at key rounded to an int, or nil when absent.
// Values beyond the int32 range saturate.
func (p Payload) OptInt(key string) *int {
	f, ok := number(p[key])
	if !ok {
		return nil
	}
	f = math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Round(f)))
	n := int(f)
	return &n
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func typeMatches(t string, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		_, ok := number(v)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

// validate checks a payload against a definition. Unknown fields are ignored.
func validate(def Definition, p Payload) error {
	for _, prop := range def.Props {
		v, ok := p[prop.Name]
		if !ok || v == nil {
			if prop.Required && !(prop.Nullable && ok) {
				return fmt.Errorf("%w: %s is required", domain.ErrInvalidPayload, prop.Name)
			}
			continue
		}
		if !typeMatches(prop.Type, v) {
			return fmt.Errorf("%w: %s must be a %s", domain.ErrInvalidPayload, prop.Name, prop.Type)
		}
		if prop.Required && !prop.Nullable && !prop.AllowEmpty && prop.Type == TypeString && strings.TrimSpace(v.(string)) == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidPayload, prop.Name)
		}
	}
	return nil
}
