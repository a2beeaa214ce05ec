package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wtchen/clubroll/internal/entity"
)

// MemberCtxKey is the gin context key the authenticated member is stored
// under by AdminAuth.
const MemberCtxKey = "member"

// TokenVerifier resolves a bearer id token to a platform user id.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken, clientID string) (string, error)
}

// MemberLookup loads a member by platform id.
type MemberLookup interface {
	GetMember(ctx context.Context, memberID string) (*entity.Member, error)
}

// AdminAuth authenticates the caller via the LINE token verify endpoint
// and requires the resolved member to carry the admin flag. 401 for a
// missing or invalid credential, 403 for a valid non-admin one.
func AdminAuth(verifier TokenVerifier, members MemberLookup, clientID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := verifier.VerifyIDToken(c.Request.Context(), token, clientID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		member, err := members.GetMember(c.Request.Context(), userID)
		if err != nil || !member.IsAdmin {
			logrus.WithField("member_id", userID).Warn("Admin API access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied: not admin"})
			return
		}

		c.Set(MemberCtxKey, member)
		c.Next()
	}
}
