package response

// 通用提示消息
const (
	MsgSuccess          = "Success"
	MsgCreated          = "Created successfully"
	MsgUnexpected       = "An unexpected error occurred"
	MsgValidationFailed = "One or more validation errors occurred"
	MsgUnauthorized     = "Unauthorized"
	MsgForbidden        = "Forbidden"
	MsgTooManyRequests  = "Too many requests, please try again later"
	MsgRouteNotFound    = "Resource not found"
)
