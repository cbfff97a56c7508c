package errors

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	grpccodes "google.golang.org/grpc/codes"
)

// Code is the type representing a namespace error code.
type Code[MT any] struct {
	Code     uint16
	Name     string
	GrpcCode grpccodes.Code
}

// New creates a new error with the given code and the message
func (c Code[MT]) New(msg string, args ...any) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: fmt.Errorf(msg, args...),
	}
}

// Wrap creates a new Error with the given code and the cause error
func (c Code[MT]) Wrap(cause error) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: cause,
	}
}

func (c Code[MT]) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Code)
}

// Is reports whether err carries this code. Errors produced by different
// codes never match, regardless of their cause.
func (c Code[MT]) Is(err error) bool {
	ledgerErr, ok := err.(Error)
	if !ok {
		return false
	}
	return ledgerErr.Code() == c.Code
}

type Error interface {
	error
	Log() *log.Entry
	Code() uint16
	CodeName() string
	GrpcCode() grpccodes.Code
	Metadata() map[string]string
}

type TypedError[MT any] interface {
	Error
	WithMetadata(MT) TypedError[MT]
}

// ErrorImpl is the default concrete implementation of TypedError.
type ErrorImpl[MT any] struct {
	code     Code[MT]
	cause    error
	metadata MT
}

func (e *ErrorImpl[MT]) Log() *log.Entry {
	return log.WithField("name", e.code.Name).
		WithField("code", e.code.Code).
		WithField("metadata", e.metadata)
}

func (e *ErrorImpl[MT]) Metadata() map[string]string {
	// convert any metadata to map[string]string
	metadata := make(map[string]string)
	buf, err := json.Marshal(e.metadata)
	if err == nil {
		var genericMap map[string]any
		if err := json.Unmarshal(buf, &genericMap); err == nil {
			for k, v := range genericMap {
				vStr := ""
				if v != nil {
					vStr = fmt.Sprintf("%v", v)
				}
				metadata[k] = vStr
			}
		}
	}
	return metadata
}

func (e *ErrorImpl[MT]) GrpcCode() grpccodes.Code {
	return e.code.GrpcCode
}

func (e *ErrorImpl[MT]) Code() uint16 {
	return e.code.Code
}

func (e *ErrorImpl[MT]) CodeName() string {
	return e.code.Name
}

// Error() implements the error interface.
func (e *ErrorImpl[MT]) Error() string {
	return fmt.Sprintf("%s: %s", e.code.String(), e.cause.Error())
}

func (e *ErrorImpl[MT]) WithMetadata(metadata MT) TypedError[MT] {
	e.metadata = metadata
	return e
}

type AssetMetadata struct {
	AssetId uint64 `json:"asset_id"`
}

type PermissionMetadata struct {
	AssetId uint64 `json:"asset_id"`
	Caller  string `json:"caller"`
	Owner   string `json:"owner"`
}

type HoldingMetadata struct {
	AssetId uint64 `json:"asset_id"`
	Account string `json:"account"`
}

type SupplyMetadata struct {
	Supply string `json:"supply"`
}

type NonceMetadata struct {
	Nonce uint64 `json:"nonce"`
}

var INTERNAL_ERROR = Code[map[string]any]{0, "INTERNAL_ERROR", grpccodes.Internal}

var ASSET_UNKNOWN = Code[AssetMetadata]{1, "ASSET_UNKNOWN", grpccodes.NotFound}

var NO_PERMISSION = Code[PermissionMetadata]{
	2,
	"NO_PERMISSION",
	grpccodes.PermissionDenied,
}

var NOT_OWNED = Code[HoldingMetadata]{3, "NOT_OWNED", grpccodes.FailedPrecondition}

var NO_SUPPLY = Code[SupplyMetadata]{4, "NO_SUPPLY", grpccodes.InvalidArgument}

var TYPE_OVERFLOW = Code[NonceMetadata]{
	5,
	"TYPE_OVERFLOW",
	grpccodes.ResourceExhausted,
}
