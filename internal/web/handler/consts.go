package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// AuthPath groups the gateway's own routes.
	AuthPath = "/auth"

	// TargetParam carries the url to return to after login or logout.
	TargetParam = "_target"

	// ExternalTargetParam carries the target to the external login service.
	ExternalTargetParam = "ERIGHTS_TARGET"

	// LogoutCommand is appended when logging out through the external login service.
	LogoutCommand = "command=logout"

	// CurrentUserKey is the fiber.Locals key of the session data of the logged-in user.
	CurrentUserKey = "CurrentUser"

	// ErrNilACDFatalLogMsg is used if app or cfg var pointer is nil.
	ErrNilACDFatalLogMsg = "app or cfg is nil"
)
