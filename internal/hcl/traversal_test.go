package hcl

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "parse %q: %s", src, diags.Error())
	return expr
}

func TestPropertyRefs(t *testing.T) {
	t.Run("literal has no refs", func(t *testing.T) {
		refs, invalid := PropertyRefs(parseExpr(t, `"com.ibm.example.cdi"`))
		assert.Empty(t, refs)
		assert.Empty(t, invalid)
	})

	t.Run("single reference", func(t *testing.T) {
		refs, invalid := PropertyRefs(parseExpr(t, "prop.pkg_api"))
		require.Len(t, refs, 1)
		assert.Equal(t, "pkg_api", refs[0].Name)
		assert.Empty(t, invalid)
	})

	t.Run("references inside a list", func(t *testing.T) {
		refs, invalid := PropertyRefs(parseExpr(t, "[prop.pkg_api, prop.pkg_internal]"))
		require.Len(t, refs, 2)
		assert.Equal(t, "pkg_api", refs[0].Name)
		assert.Equal(t, "pkg_internal", refs[1].Name)
		assert.Empty(t, invalid)
	})

	t.Run("foreign root is invalid", func(t *testing.T) {
		refs, invalid := PropertyRefs(parseExpr(t, "var.something"))
		assert.Empty(t, refs)
		require.Len(t, invalid, 1)
		assert.Equal(t, "var.something", TraversalKey(invalid[0]))
	})

	t.Run("bare prop root is invalid", func(t *testing.T) {
		refs, invalid := PropertyRefs(parseExpr(t, "prop"))
		assert.Empty(t, refs)
		assert.Len(t, invalid, 1)
	})
}
