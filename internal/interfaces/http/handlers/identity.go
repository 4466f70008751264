// internal/interfaces/http/handlers/identity.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/flowershop-backend/internal/domain/identity"
	"github.com/your-org/flowershop-backend/internal/domain/user"
	"github.com/your-org/flowershop-backend/internal/interfaces/http/middleware"
)

// resolveIdentity builds the caller's identity for this request. Logged-in
// customers get an account identity with their profile name and phone so
// checkout can prefill contact fields; everyone else gets a guest identity
// keyed by the browser session cookie. Admin tokens are not customer
// identities: an admin id would collide with whichever customer shares the
// number, so admins shop as guests like anyone else.
func resolveIdentity(c *gin.Context, users *user.Service) identity.Identity {
	if userID, ok := middleware.GetCustomerIDFromContext(c); ok {
		profile, err := users.GetProfile(c.Request.Context(), userID)
		if err == nil {
			return identity.Account(userID, profile.Name, profile.Phone)
		}
		// Token was valid but the account row is gone; treat the caller
		// as authenticated with no prefill data rather than failing.
		return identity.Account(userID, "", "")
	}
	return identity.Guest(getOrCreateSessionID(c))
}

// getOrCreateSessionID returns the browser session ID, minting one if needed
func getOrCreateSessionID(c *gin.Context) string {
	// Try to get session ID from cookie
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		// Generate new session ID
		sessionID = uuid.New().String()

		// Set session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
