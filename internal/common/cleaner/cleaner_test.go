package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanToText(t *testing.T) {
	c := NewTextCleaner()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips tags",
			input: `<div class="content"><h5>Total Problems Solved: <b>412</b></h5></div>`,
			want:  "Total Problems Solved: 412",
		},
		{
			name:  "collapses whitespace",
			input: "Total   Problems\n\tSolved:  412",
			want:  "Total Problems Solved: 412",
		},
		{
			name:  "drops scripts entirely",
			input: `<script>alert("x")</script>rating 1823`,
			want:  "rating 1823",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.CleanToText(tc.input))
		})
	}
}
