package constants

// Standard Response Field Keys
const (
	ResponseFieldSuccess    = "success"
	ResponseFieldData       = "data"
	ResponseFieldPagination = "pagination"
	ResponseFieldMessage    = "message"
	ResponseFieldDetails    = "details"
)

func BuildDataResponse(data any) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldData:    data,
	}
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldSuccess: false,
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
	}
}
