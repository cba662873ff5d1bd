package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ProductID  string   `json:"product_id"`
	MatchScore float64  `json:"match_score"`
	Benefits   []string `json:"key_benefits"`
}

func TestFromContextCopiesTypedValue(t *testing.T) {
	orig := rec{ProductID: "p1", MatchScore: 0.7, Benefits: []string{"light"}}
	fb := FromContext("recommendation", Static(func() rec { return rec{Benefits: []string{}} }))

	got := fb(Context{"recommendation": orig})
	assert.Equal(t, orig, got)
	got.Benefits[0] = "changed"
	assert.Equal(t, "light", orig.Benefits[0], "fallback must not alias the caller's value")
}

func TestFromContextAcceptsGenericJSON(t *testing.T) {
	fb := FromContext("recommendation", Static(func() rec { return rec{Benefits: []string{}} }))
	got := fb(Context{"recommendation": map[string]any{"product_id": "p9", "match_score": 0.3}})
	assert.Equal(t, "p9", got.ProductID)
	assert.NotNil(t, got.Benefits)
}

func TestFromContextDefaults(t *testing.T) {
	def := Static(func() rec { return rec{ProductID: "none", Benefits: []string{}} })
	fb := FromContext("recommendation", def)
	assert.Equal(t, "none", fb(Context{}).ProductID)
	assert.Equal(t, "none", fb(Context{"recommendation": "garbage"}).ProductID)
	assert.Equal(t, "none", fb(Context{"recommendation": nil}).ProductID)
}

func TestContextValue(t *testing.T) {
	c := Context{"n": 3, "r": map[string]any{"product_id": "x"}}
	n, ok := ContextValue[int](c, "n")
	require.True(t, ok)
	assert.Equal(t, 3, n)
	r, ok := ContextValue[rec](c, "r")
	require.True(t, ok)
	assert.Equal(t, "x", r.ProductID)
	_, ok = ContextValue[rec](c, "missing")
	assert.False(t, ok)
	_, ok = ContextValue[rec](Context{"r": "garbage"}, "r")
	assert.False(t, ok)
}

