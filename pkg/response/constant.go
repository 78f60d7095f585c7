package response

const (
	MessageSuccess = "Success"

	ValidationErrorCode     = 1
	NotFoundErrorCode       = 404
	InternalServerErrorCode = 500
	UnavailableErrorCode    = 503

	DefaultErrorMessage = "Something went wrong"

	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)
