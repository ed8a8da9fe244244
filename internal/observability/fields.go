package observability

import "go.uber.org/zap"

// Field aliases so callers don't need to import zap directly.
var (
	String  = zap.String
	Int     = zap.Int
	Float64 = zap.Float64
	Bool    = zap.Bool
	Error   = zap.Error
)
