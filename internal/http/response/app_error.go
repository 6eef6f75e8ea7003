package response

// AppError 统一错误包装，Status 为 HTTP 状态码
type AppError struct {
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(status int, message string, errs []string, err error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Errors:  errs,
		Err:     err,
	}
}
