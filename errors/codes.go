package errors

// ErrorCode identifies an application error class in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_CONFLICT          ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	// Pipeline
	ErrorCode_TRANSCRIPT_NOT_FOUND      ErrorCode = 2000
	ErrorCode_TRANSCRIPT_NO_TEXT        ErrorCode = 2001
	ErrorCode_PIPELINE_ALREADY_RUNNING  ErrorCode = 2002
	ErrorCode_PIPELINE_START_FAILED     ErrorCode = 2003
	ErrorCode_AI_GATEWAY_FAILED         ErrorCode = 2004
	ErrorCode_AI_RESPONSE_UNPARSEABLE   ErrorCode = 2005
	ErrorCode_AI_OUTPUT_TRUNCATED       ErrorCode = 2006
	ErrorCode_PROJECT_NOT_FOUND         ErrorCode = 2007
	ErrorCode_REPORT_GENERATION_FAILED  ErrorCode = 2008
	ErrorCode_INVALID_REPORT_TYPE       ErrorCode = 2009
	ErrorCode_TRANSCRIPTION_FAILED      ErrorCode = 2010
	ErrorCode_UPLOAD_FAILED             ErrorCode = 2011
	ErrorCode_INTEGRATION_CACHE_FAILED  ErrorCode = 2012
	ErrorCode_DB_QUERY_FAILED           ErrorCode = 2013
	ErrorCode_MISSING_UPLOAD_FILE       ErrorCode = 2014
	ErrorCode_INTEGRATION_STORAGE_ERROR ErrorCode = 2015
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:            "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_CONFLICT:                  "CONFLICT",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_TRANSCRIPT_NOT_FOUND:      "TRANSCRIPT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_NO_TEXT:        "TRANSCRIPT_NO_TEXT",
	ErrorCode_PIPELINE_ALREADY_RUNNING:  "PIPELINE_ALREADY_RUNNING",
	ErrorCode_PIPELINE_START_FAILED:     "PIPELINE_START_FAILED",
	ErrorCode_AI_GATEWAY_FAILED:         "AI_GATEWAY_FAILED",
	ErrorCode_AI_RESPONSE_UNPARSEABLE:   "AI_RESPONSE_UNPARSEABLE",
	ErrorCode_AI_OUTPUT_TRUNCATED:       "AI_OUTPUT_TRUNCATED",
	ErrorCode_PROJECT_NOT_FOUND:         "PROJECT_NOT_FOUND",
	ErrorCode_REPORT_GENERATION_FAILED:  "REPORT_GENERATION_FAILED",
	ErrorCode_INVALID_REPORT_TYPE:       "INVALID_REPORT_TYPE",
	ErrorCode_TRANSCRIPTION_FAILED:      "TRANSCRIPTION_FAILED",
	ErrorCode_UPLOAD_FAILED:             "UPLOAD_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:  "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:           "DB_QUERY_FAILED",
	ErrorCode_MISSING_UPLOAD_FILE:       "MISSING_UPLOAD_FILE",
	ErrorCode_INTEGRATION_STORAGE_ERROR: "INTEGRATION_STORAGE_ERROR",
}

// String returns the symbolic name for the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
