package props

import (
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declRange(file string, line int) hcl.Range {
	return hcl.Range{
		Filename: file,
		Start:    hcl.Pos{Line: line, Column: 1},
		End:      hcl.Pos{Line: line, Column: 20},
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore()
	require.NotNil(t, s)
	assert.Zero(t, s.Len())
	assert.False(t, s.Sealed())
}

func TestDeclareAndResolve(t *testing.T) {
	s := NewStore()

	err := s.Declare(Declaration{Name: "pkg.api", Value: "com.ibm.example.cdi.api", DeclRange: declRange("root.hcl", 2)})
	require.NoError(t, err)

	value, err := s.Resolve("pkg.api")
	require.NoError(t, err)
	assert.Equal(t, "com.ibm.example.cdi.api", value)

	// Resolution is stable no matter how often the value is read.
	for i := 0; i < 3; i++ {
		again, err := s.Resolve("pkg.api")
		require.NoError(t, err)
		assert.Equal(t, value, again)
	}
}

func TestDeclareDuplicate(t *testing.T) {
	s := NewStore()

	first := declRange("root.hcl", 2)
	second := declRange("other.hcl", 7)
	require.NoError(t, s.Declare(Declaration{Name: "short_name", Value: "example-feature", DeclRange: first}))

	err := s.Declare(Declaration{Name: "short_name", Value: "other-feature", DeclRange: second})
	require.Error(t, err)

	var dup *DuplicateVariableError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "short_name", dup.Name)
	assert.Equal(t, first, dup.First)
	assert.Equal(t, second, dup.Second)
	assert.Contains(t, dup.Error(), "short_name")

	// The first declaration wins; the store is not corrupted.
	value, err := s.Resolve("short_name")
	require.NoError(t, err)
	assert.Equal(t, "example-feature", value)
}

func TestResolveUndeclared(t *testing.T) {
	s := NewStore()

	_, err := s.Resolve("never.declared")
	require.Error(t, err)

	var undeclared *UndeclaredVariableError
	require.True(t, errors.As(err, &undeclared))
	assert.Equal(t, "never.declared", undeclared.Name)
}

func TestSeal(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Declare(Declaration{Name: "a", Value: "1"}))

	s.Seal()
	assert.True(t, s.Sealed())

	// Reads keep working after the barrier.
	value, err := s.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	// Writes after the barrier are a programmer error.
	assert.Panics(t, func() {
		_ = s.Declare(Declaration{Name: "b", Value: "2"})
	})
}

func TestNames(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Declare(Declaration{Name: "zeta", Value: "z"}))
	require.NoError(t, s.Declare(Declaration{Name: "alpha", Value: "a"}))
	require.NoError(t, s.Declare(Declaration{Name: "mid", Value: "m"}))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Names())
	assert.True(t, s.Has("alpha"))
	assert.False(t, s.Has("omega"))
}
