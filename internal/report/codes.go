// Package report collects the domain failures found while a command runs and
// renders them the way every command reports them.
package report

// ErrorCode identifies a category of domain failure.
// Codes are string-based so they serialize naturally into the JSON result.
type ErrorCode string

const (
	// Properties file state.
	CodeMissingFile   ErrorCode = "MISSING_FILE"
	CodeMalformedFile ErrorCode = "MALFORMED_FILE"

	// Property content.
	CodeMissingProperty   ErrorCode = "MISSING_PROPERTY"
	CodeMissingProperties ErrorCode = "MISSING_PROPERTIES"
	CodeInvalidValue      ErrorCode = "INVALID_VALUE"
	CodeInvalidValues     ErrorCode = "INVALID_VALUES"
	CodeMissingValue      ErrorCode = "MISSING_VALUE"
	CodeUnknownProperty   ErrorCode = "UNKNOWN_PROPERTY"

	// Command input and filesystem.
	CodeInvalidFileExtension    ErrorCode = "INVALID_FILE_EXTENSION"
	CodeGenerateOperationDenied ErrorCode = "GENERATE_OPERATION_DENIED"
	CodeInvalidPath             ErrorCode = "INVALID_PATH"
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	CodeInvalidArgument         ErrorCode = "INVALID_ARGUMENT"

	// External tool.
	CodeDownloadError    ErrorCode = "DOWNLOAD_ERROR"
	CodeCompilationError ErrorCode = "COMPILATION_ERROR"
)

// Standard messages shared by several commands.
const (
	MsgMissingFile          = "The properties file has not been loaded or cannot be accessed."
	MsgMalformedFile        = "The properties file is not a valid JSON."
	MsgMissingValue         = "The value is missing."
	MsgInvalidFileExtension = "Only the .json file extension is supported."
	MsgOperationDenied      = "The operation was cancelled."
	MsgInvalidPath          = "The provided path does not exist or is invalid."
	MsgInsufficientPerms    = "The user does not have permissions to access the file."
	MsgInvalidArgument      = "Provide at least one property=value pair."
)
