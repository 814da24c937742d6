package transform

// Func is a pure, nil-safe value transform. Transforms accept a missing
// (nil) input and return nil rather than failing, so the mapper can apply
// them unconditionally.
type Func func(value interface{}) interface{}

// registry is the fixed set of named transforms a mapping schema may
// reference. Adding a transform means registering a function here, never
// branching on platform identity in the mapper.
var registry = map[string]Func{
	"divide_by_100":               DivideBy100,
	"extract_creative_data":       ExtractCreativeData,
	"extract_tweet_creative_data": ExtractTweetCreativeData,
}

// Lookup resolves a transform by name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Known reports whether name resolves to a registered transform. The schema
// registry checks this at load time so an unknown transform name is a load
// failure, not a silent no-op at map time.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns the registered transform names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// DivideBy100 scales a numeric value down by 100, e.g. cents to dollars.
// Non-numeric input passes through unchanged so the mapper's coercion step
// sees the bad value and reports the cast failure.
func DivideBy100(value interface{}) interface{} {
	switch v := value.(type) {
	case float64:
		return v / 100
	case float32:
		return float64(v) / 100
	case int:
		return float64(v) / 100
	case int32:
		return float64(v) / 100
	case int64:
		return float64(v) / 100
	}
	return value
}

// ExtractCreativeData flattens a list of Facebook creative objects into
// {photo_url, title} pairs.
func ExtractCreativeData(value interface{}) interface{} {
	return extractCreatives(value, "image_url", "headline")
}

// ExtractTweetCreativeData flattens a list of Twitter creative objects into
// {photo_url, title} pairs.
func ExtractTweetCreativeData(value interface{}) interface{} {
	return extractCreatives(value, "media_url", "text")
}

func extractCreatives(value interface{}, urlKey, titleKey string) interface{} {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	creatives := make([]interface{}, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		creatives = append(creatives, map[string]interface{}{
			"photo_url": obj[urlKey],
			"title":     obj[titleKey],
		})
	}
	return creatives
}
