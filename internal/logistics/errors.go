package logistics

import "errors"

var (
	// ErrUnauthenticated is returned when the workspace has no signed-in user.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden is returned when the signed-in user's role lacks a capability.
	ErrForbidden = errors.New("permission denied")
	// ErrInvalidPage is returned when navigating to an unknown page or category.
	ErrInvalidPage = errors.New("invalid page")
)

// LoginDeniedMessage is shown on the login screen when the email is not on
// the allow-list.
const LoginDeniedMessage = "Access denied. This email is not authorized."
