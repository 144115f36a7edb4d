package linkedin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
)

func TestVerifyURL(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Verification
	}{
		{
			name:  "full url",
			input: "https://www.linkedin.com/in/jane-doe/",
			want:  Verification{IsValid: true, Username: "jane-doe", FullURL: "https://www.linkedin.com/in/jane-doe"},
		},
		{
			name:  "full url without www",
			input: "https://linkedin.com/in/jane-doe",
			want:  Verification{IsValid: true, Username: "jane-doe", FullURL: "https://www.linkedin.com/in/jane-doe"},
		},
		{
			name:  "bare domain and path",
			input: "www.linkedin.com/in/jane-doe",
			want:  Verification{IsValid: true, Username: "jane-doe", FullURL: "https://www.linkedin.com/in/jane-doe"},
		},
		{
			name:  "path only",
			input: "/in/jane-doe",
			want:  Verification{IsValid: true, Username: "jane-doe", FullURL: "https://www.linkedin.com/in/jane-doe"},
		},
		{
			name:  "bare username",
			input: "jane-doe",
			want:  Verification{IsValid: true, Username: "jane-doe", FullURL: "https://www.linkedin.com/in/jane-doe"},
		},
		{
			name:  "surrounding whitespace",
			input: "  jane-doe  ",
			want:  Verification{IsValid: true, Username: "jane-doe", FullURL: "https://www.linkedin.com/in/jane-doe"},
		},
		{
			name:  "not a url",
			input: "not a url",
			want:  Verification{},
		},
		{
			name:  "wrong domain",
			input: "https://example.com/in/jane-doe",
			want:  Verification{},
		},
		{
			name:  "company page",
			input: "https://www.linkedin.com/company/acme",
			want:  Verification{},
		},
		{
			name:  "empty",
			input: "",
			want:  Verification{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerifyURL(tc.input))
		})
	}
}

func TestFetchNormalize(t *testing.T) {
	a := New()
	ctx := context.Background()

	raw, err := a.Fetch(ctx, "https://www.linkedin.com/in/jane-doe/")
	require.NoError(t, err)

	stats, err := a.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformLinkedIn, stats.Platform)
	assert.Equal(t, "jane-doe", stats.Username)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", stats.ProfileURL)
	assert.Equal(t, 0, stats.Rating)
	assert.Equal(t, 0, stats.ProblemsSolved)
	assert.Equal(t, true, stats.Metadata["validated"])
}

func TestFetchInvalidFormat(t *testing.T) {
	a := New()

	_, err := a.Fetch(context.Background(), "not a url")
	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrInvalidFormat)
}
