package optimizers

import (
	"github.com/evolvelab/gopop/pkg/errors"
)

// paramSet reads typed values out of a free-form parameter map, remembering
// which keys were consumed and the first decoding failure. YAML hands
// integers over as int and everything else numeric as float64; both are
// accepted wherever a number is expected.
type paramSet struct {
	values map[string]interface{}
	used   map[string]bool
	err    error
}

func newParamSet(values map[string]interface{}) *paramSet {
	return &paramSet{values: values, used: make(map[string]bool)}
}

func (p *paramSet) lookup(key string) (interface{}, bool) {
	p.used[key] = true
	v, ok := p.values[key]
	return v, ok
}

func (p *paramSet) fail(key string, value interface{}, want string) {
	if p.err == nil {
		p.err = errors.WithFields(
			errors.New(errors.InvalidInput, "parameter "+key+" must be "+want),
			errors.Fields{"parameter": key, "value": value})
	}
}

func (p *paramSet) float(key string, fallback float64) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	p.fail(key, v, "a number")
	return fallback
}

func (p *paramSet) integer(key string, fallback int) int {
	v, ok := p.lookup(key)
	if !ok {
		return fallback
	}
	if n, ok := v.(int); ok {
		return n
	}
	p.fail(key, v, "an integer")
	return fallback
}

func (p *paramSet) str(key, fallback string) string {
	v, ok := p.lookup(key)
	if !ok {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	p.fail(key, v, "a string")
	return fallback
}

func (p *paramSet) floats(key string) []float64 {
	v, ok := p.lookup(key)
	if !ok {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		p.fail(key, v, "a list of numbers")
		return nil
	}
	out := make([]float64, len(list))
	for i, item := range list {
		switch n := item.(type) {
		case float64:
			out[i] = n
		case int:
			out[i] = float64(n)
		default:
			p.fail(key, item, "a list of numbers")
			return nil
		}
	}
	return out
}

// finish reports the first decoding failure, or the first parameter no field
// consumed.
func (p *paramSet) finish(optimizer string) error {
	if p.err != nil {
		return p.err
	}
	for key := range p.values {
		if !p.used[key] {
			return errors.WithFields(
				errors.New(errors.InvalidInput, "unknown parameter "+key+" for "+optimizer),
				errors.Fields{"optimizer": optimizer, "parameter": key})
		}
	}
	return nil
}
