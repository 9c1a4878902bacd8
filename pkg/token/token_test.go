package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)
	tok, err := m.Issue("u1", "leo")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "leo", claims.Username)
}

func TestParseRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	tok, err := m.Issue("u1", "leo")
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
