package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("Known transforms resolve", func(t *testing.T) {
		for _, name := range []string{"divide_by_100", "extract_creative_data", "extract_tweet_creative_data"} {
			fn, ok := Lookup(name)
			assert.True(t, ok, name)
			assert.NotNil(t, fn, name)
			assert.True(t, Known(name))
		}
	})

	t.Run("Unknown transform does not resolve", func(t *testing.T) {
		_, ok := Lookup("uppercase")
		assert.False(t, ok)
		assert.False(t, Known("uppercase"))
	})
}

func TestDivideBy100(t *testing.T) {
	t.Run("Scales numeric values", func(t *testing.T) {
		assert.Equal(t, 20.0, DivideBy100(float64(2000)))
		assert.Equal(t, 0.5, DivideBy100(50))
		assert.Equal(t, 1.5, DivideBy100(int64(150)))
	})

	t.Run("Nil input yields nil", func(t *testing.T) {
		assert.Nil(t, DivideBy100(nil))
	})

	t.Run("Non-numeric input passes through unchanged", func(t *testing.T) {
		// The mapper's coercion step reports the bad value; swallowing
		// it here would hide the cast failure from the warnings.
		assert.Equal(t, "2000", DivideBy100("2000"))
		assert.Equal(t, true, DivideBy100(true))
	})
}

func TestExtractCreativeData(t *testing.T) {
	t.Run("Flattens creatives to photo_url and title", func(t *testing.T) {
		creatives := []interface{}{
			map[string]interface{}{"image_url": "http://example.com/a.png", "headline": "Ad A"},
			map[string]interface{}{"image_url": "http://example.com/b.png", "headline": "Ad B"},
		}

		result := ExtractCreativeData(creatives)
		items, ok := result.([]interface{})
		require.True(t, ok)
		require.Len(t, items, 2)

		first := items[0].(map[string]interface{})
		assert.Equal(t, "http://example.com/a.png", first["photo_url"])
		assert.Equal(t, "Ad A", first["title"])
	})

	t.Run("Tweet creatives use platform-specific key names", func(t *testing.T) {
		creatives := []interface{}{
			map[string]interface{}{"media_url": "http://example.com/t.png", "text": "Tweet Ad"},
		}

		result := ExtractTweetCreativeData(creatives)
		items, ok := result.([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)

		first := items[0].(map[string]interface{})
		assert.Equal(t, "http://example.com/t.png", first["photo_url"])
		assert.Equal(t, "Tweet Ad", first["title"])
	})

	t.Run("Nil input yields nil", func(t *testing.T) {
		assert.Nil(t, ExtractCreativeData(nil))
		assert.Nil(t, ExtractTweetCreativeData(nil))
	})

	t.Run("Non-object entries are skipped", func(t *testing.T) {
		result := ExtractCreativeData([]interface{}{"not-an-object"})
		items, ok := result.([]interface{})
		require.True(t, ok)
		assert.Empty(t, items)
	})
}
