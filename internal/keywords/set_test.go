package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Java", "java"},
		{"  Go Developer  ", "go developer"},
		{"CTO", "cto"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetAddDeduplicates(t *testing.T) {
	s := NewSet("Java", "java", " JAVA ", "", "  ")

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("java"))
	assert.True(t, s.Contains("JaVa"))
	assert.False(t, s.Contains(""))
}

func TestSetAddReturnsNewCount(t *testing.T) {
	s := NewSet("golang")

	assert.Equal(t, 2, s.Add("python", "Golang", "rust"))
	assert.Equal(t, 3, s.Len())
}

func TestSetSorted(t *testing.T) {
	s := NewSet("zig", "ada", "go")

	assert.Equal(t, []string{"ada", "go", "zig"}, s.Sorted())
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind(KindInclusion))
	assert.True(t, ValidKind(KindExclusion))
	assert.False(t, ValidKind("remove"))
	assert.False(t, ValidKind(""))
}
