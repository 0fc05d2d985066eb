package middleware

import (
	"net/http"
	"slices"
)

const (
	PermLoadBalance             = "users.load-balance"
	PermTransferBalance         = "users.transfer-balance"
	PermFetchTransferStatements = "users.fetch-balance-transfer-statements"
	PermFetchNotifications      = "users.fetch-notifications"
	PermFetchLinkedBankAccounts = "users.fetch-linked-bank-accounts"
)

var userPermissions = []string{
	PermLoadBalance,
	PermTransferBalance,
	PermFetchTransferStatements,
	PermFetchNotifications,
	PermFetchLinkedBankAccounts,
}

// RolePermissions is the static role to permission table.
var RolePermissions = map[string][]string{
	"user":  userPermissions,
	"admin": userPermissions,
}

func HasPermission(role, permission string) bool {
	return slices.Contains(RolePermissions[role], permission)
}

// RequirePermission must run after the auth middleware.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || !HasPermission(id.Role, permission) {
				writeError(w, http.StatusForbidden, "Your access is forbidden.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
