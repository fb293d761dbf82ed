package httpapi

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/bistro/internal/auth"
	"github.com/nikolayk812/bistro/internal/domain"
)

const identityKey = "identity"

// verifyIdentity rejects requests without a valid bearer token and stores
// the verified identity on the context.
func (s *Server) verifyIdentity(c *gin.Context) {
	token, err := auth.ParseBearer(c.GetHeader("Authorization"))
	if err != nil {
		s.abort(c, err)
		return
	}

	identity, err := s.deps.Tokens.Verify(c.Request.Context(), token)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

// requireRole must run after verifyIdentity.
func (s *Server) requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			s.abort(c, fmt.Errorf("%w: no verified identity", domain.ErrUnauthorized))
			return
		}

		if err := s.deps.Roles.Require(c.Request.Context(), identity.Email, role); err != nil {
			s.abort(c, err)
			return
		}

		c.Next()
	}
}

func identityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}

	identity, ok := v.(auth.Identity)
	return identity, ok
}
