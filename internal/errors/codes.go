package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK              Code = "OK"
	CodeConfig          Code = "CONFIG"
	CodeDataShape       Code = "DATA_SHAPE"
	CodeUpstream        Code = "UPSTREAM"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeCanceled        Code = "CANCELED"
	CodeInternal        Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Metadata keys shared by the clients and the orchestrator
const (
	MetaStatus     = "status"
	MetaBody       = "body"
	MetaCreatureID = "creature_id"
	MetaURL        = "url"
)
