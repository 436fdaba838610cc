package jsoncolor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorize_Summary(t *testing.T) {
	input := []byte(`{"files":[{"path":"lib/app.js","global":1,"lines":2}],"total":3,"clean":false,"location":null}`)
	result := Colorize(input)

	assert.Contains(t, result, "lib/app.js")
	assert.Contains(t, result, "total")
	assert.Contains(t, result, "3")
	assert.Contains(t, result, "false")
	assert.Contains(t, result, "null")
	assert.Contains(t, result, "\n", "expected indented output")
}

func TestColorize_InvalidJSON(t *testing.T) {
	assert.Equal(t, "not json", Colorize([]byte("not json")))
}

func TestColorize_Numbers(t *testing.T) {
	result := Colorize([]byte(`{"int":42,"float":3.14,"neg":-1,"exp":1e10}`))
	for _, want := range []string{"42", "3.14", "-1", "1e10"} {
		assert.Contains(t, result, want)
	}
}

func TestColorize_EscapedStrings(t *testing.T) {
	result := Colorize([]byte(`{"message":"use \"textContent\""}`))
	assert.Contains(t, result, `use \"textContent\"`)
}

func TestFindStringEnd(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		pos      int
		expected int
	}{
		{"simple", `"hello"`, 0, 6},
		{"escaped quote", `"he\"llo"`, 0, 8},
		{"escaped backslash", `"he\\"`, 0, 5},
		{"empty string", `""`, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findStringEnd(tt.input, tt.pos))
		})
	}
}
