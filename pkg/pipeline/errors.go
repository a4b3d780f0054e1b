package pipeline

import "errors"

// Sentinel errors for pipeline documents
var (
	// Document shape errors
	ErrSchemaValidation  = errors.New("pipeline document failed schema validation")
	ErrDuplicatePipeline = errors.New("duplicate pipeline name")
	ErrUnknownPipeline   = errors.New("pipeline name not defined in document")
	ErrUnresolvedSource  = errors.New("pipeline sources could not be resolved")
	ErrUnknownOperation  = errors.New("unknown operation type")
	ErrMissingParameter  = errors.New("operation is missing a required parameter")

	// Registry errors
	ErrUnknownCallable           = errors.New("no callable registered under this name")
	ErrCallableAlreadyRegistered = errors.New("callable already registered under this name")
)
