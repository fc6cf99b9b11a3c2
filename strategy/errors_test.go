package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	e := Error{Kind: KindToken, Message: "Token verification failed"}
	assert.Equal(t, "token: Token verification failed", e.Error())
}

func TestErrors_Empty(t *testing.T) {
	var e Errors
	assert.False(t, e.Failed())
	assert.Equal(t, 0, e.Len())
	assert.Nil(t, e.Entries())
	assert.Equal(t, "", e.Error())
}

func TestErrors_NilReceiver(t *testing.T) {
	var e *Errors
	assert.False(t, e.Failed())
	assert.Equal(t, 0, e.Len())
	assert.Nil(t, e.Entries())
}

func TestErrors_PreservesOrder(t *testing.T) {
	var e Errors
	e.Fail("invalid_grant", "Code was already redeemed.")
	e.Fail(KindOAuth2, "connection reset")

	entries := e.Entries()
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, "invalid_grant", entries[0].Kind)
	assert.Equal(t, KindOAuth2, entries[1].Kind)
	assert.Equal(t, "invalid_grant: Code was already redeemed.; OAuth2: connection reset", e.Error())
}
