package auth

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

func init() {
	// Session values are gob-encoded by the store.
	gob.Register(Identity{})
}

// Login stores the identity in the caller's session, replacing whatever was
// there before (re-authentication just swaps the session contents).
func Login(c *gin.Context, id *Identity) error {
	sess := sessions.Default(c)
	sess.Set(identityKey, *id)
	return sess.Save()
}

// CurrentIdentity resolves the caller's session, if any.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v := sessions.Default(c).Get(identityKey)
	if v == nil {
		return nil, false
	}
	id, ok := v.(Identity)
	if !ok {
		return nil, false
	}
	return &id, true
}

// Logout drops every session value, returning the caller to anonymous. The
// cookie itself may outlive this to carry the goodbye flash.
func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}
