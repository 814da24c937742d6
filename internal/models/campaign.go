package models

// Campaign is an untyped advertising-campaign record as it flows through the
// migration pipeline. Values carry the shapes produced by encoding/json:
// string, float64, bool, nil, map[string]interface{} and []interface{}.
type Campaign map[string]interface{}

// Name returns the campaign's display name, or empty when absent.
func (c Campaign) Name() string {
	if name, ok := c["name"].(string); ok {
		return name
	}
	return ""
}

// Clone returns a deep copy of the campaign. Each pipeline stage works on its
// own copy so earlier stages never observe downstream mutations.
func (c Campaign) Clone() Campaign {
	if c == nil {
		return nil
	}
	clone := make(Campaign, len(c))
	for key, value := range c {
		clone[key] = cloneValue(value)
	}
	return clone
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		nested := make(map[string]interface{}, len(v))
		for key, item := range v {
			nested[key] = cloneValue(item)
		}
		return nested
	case Campaign:
		return map[string]interface{}(v.Clone())
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = cloneValue(item)
		}
		return items
	default:
		return v
	}
}
