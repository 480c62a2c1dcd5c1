package domain

import "net/http"

// Error is the single error type crossing the service boundary. Status is the
// HTTP status the transport layer must map it to, Code is a stable
// machine-readable discriminant, and Detail is the human-readable message.
// Two Errors are equivalent under errors.Is when their codes match, so
// services may decorate Detail without breaking callers that branch on kind.
type Error struct {
	Status int
	Code   string
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// Is matches on Code so sentinel comparisons survive WithDetail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetail returns a copy of e carrying a different detail message.
func (e *Error) WithDetail(detail string) *Error {
	return &Error{Status: e.Status, Code: e.Code, Detail: detail}
}

var (
	// Registration / login.
	ErrDuplicateEmail     = &Error{http.StatusBadRequest, "DUPLICATE_EMAIL", "email already registered"}
	ErrInvalidCredentials = &Error{http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password"}
	ErrAccountInactive    = &Error{http.StatusUnauthorized, "ACCOUNT_INACTIVE", "account is inactive"}
	ErrInvalidInput       = &Error{http.StatusBadRequest, "INVALID_INPUT", "invalid input"}
	ErrEmptyUpdate        = &Error{http.StatusBadRequest, "EMPTY_UPDATE", "no fields to update"}

	// Token / principal resolution. All surface as 401 but stay
	// distinguishable by code.
	ErrTokenInvalid        = &Error{http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token"}
	ErrTokenWrongType      = &Error{http.StatusUnauthorized, "INVALID_TOKEN_TYPE", "invalid token type"}
	ErrTokenPayloadInvalid = &Error{http.StatusUnauthorized, "INVALID_TOKEN_PAYLOAD", "invalid token payload"}
	ErrUserNotFound        = &Error{http.StatusUnauthorized, "USER_NOT_FOUND", "user not found"}

	// Role / ownership.
	ErrVendorRoleRequired = &Error{http.StatusForbidden, "VENDOR_ROLE_REQUIRED", "only vendors can create stores"}
	ErrInsufficientRole   = &Error{http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "role not permitted to access this resource"}
	ErrStoreNotOwned      = &Error{http.StatusForbidden, "STORE_OWNERSHIP_REQUIRED", "you do not own this store"}

	// Store conflicts / lookups.
	ErrVendorHasStore  = &Error{http.StatusConflict, "STORE_ALREADY_EXISTS_FOR_VENDOR", "vendor already has a store"}
	ErrStoreNameTaken  = &Error{http.StatusConflict, "STORE_NAME_NOT_UNIQUE", "store name is already in use"}
	ErrStoreNotFound   = &Error{http.StatusNotFound, "STORE_NOT_FOUND", "store not found"}
	ErrProfileNotFound = &Error{http.StatusNotFound, "PROFILE_NOT_FOUND", "user profile not found"}
)
