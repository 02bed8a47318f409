package entity

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestFieldsKeepInsertionOrder(t *testing.T) {
	f := NewFields()
	f.Set("command", "v")
	f.Set("amount", "100")
	f.Set("currency", "840")
	f.Set("amount", "200")

	require.Equal(t, []string{"command", "amount", "currency"}, f.Keys())
	value, ok := f.Get("amount")
	require.True(t, ok)
	require.Equal(t, "200", value)
	require.Equal(t, 3, f.Len())
}

func TestFieldsDelete(t *testing.T) {
	f := FieldsOf("a", "1", "b", "2", "c", "3")
	f.Delete("b")
	f.Delete("missing")

	require.Equal(t, []string{"a", "c"}, f.Keys())
	require.False(t, f.Has("b"))
}

func TestFieldsMergeOverrides(t *testing.T) {
	defaults := FieldsOf("description", "default", "biller", "x")
	explicit := FieldsOf("description", "explicit", "extra", "1")

	merged := defaults.Clone()
	merged.Merge(explicit)

	require.Equal(t, []string{"description", "biller", "extra"}, merged.Keys())
	require.Equal(t, map[string]string{"description": "explicit", "biller": "x", "extra": "1"}, merged.Map())
	// the source is untouched
	value, _ := defaults.Get("description")
	require.Equal(t, "default", value)
}

func TestFieldsEncode(t *testing.T) {
	f := FieldsOf("command", "v", "amount", "100", "description", "a b&c")
	require.Equal(t, "command=v&amount=100&description=a+b%26c", f.Encode())
	require.Equal(t, "", NewFields().Encode())
}

func TestFieldsNil(t *testing.T) {
	var f *Fields
	require.Equal(t, 0, f.Len())
	require.Nil(t, f.Keys())
	require.False(t, f.Has("a"))
	require.Empty(t, f.Map())
	require.Equal(t, 0, f.Clone().Len())
}

func TestFieldsOfIgnoresDanglingKey(t *testing.T) {
	f := FieldsOf("a", "1", "b")
	require.Equal(t, []string{"a"}, f.Keys())
}
