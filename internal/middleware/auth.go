package middleware

import (
	"net/http"
	"strconv"

	"ziggler-bot/internal/auth"
	"ziggler-bot/internal/logger"
	"ziggler-bot/internal/utils"

	"go.uber.org/zap"
)

// Identity puts the gateway-vouched caller into the request context. Requests
// without a token pass through anonymous; a bad token is rejected.
func Identity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected identity token", zap.Error(err))
				utils.WriteJSONError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			role := claims.Role
			if role == "" {
				role = utils.RoleUser
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.SessionID, role)
			if claims.UserID > 0 {
				ctx = logger.WithOwner(ctx, "user:"+strconv.FormatInt(claims.UserID, 10))
			} else {
				ctx = logger.WithOwner(ctx, "session:"+claims.SessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects callers carrying neither a user nor a session id.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := utils.GetUserIDFromContext(r.Context())
		if !ok && utils.GetSessionIDFromContext(r.Context()) == "" {
			utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects anonymous sessions.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin admits the ADMIN role or any user id isAdmin accepts.
func RequireAdmin(isAdmin func(int64) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if utils.GetUserRoleFromContext(r.Context()) != utils.RoleAdmin && !isAdmin(userID) {
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
