package retry

import "context"

// Param is the single named parameter of a remote operation.
type Param struct {
	Name  string
	Value any
}

// Transport invokes a named remote operation. A successful call returns an untyped
// response tree (map[string]any) or a Fault.
type Transport interface {
	Call(ctx context.Context, op string, param Param) (any, error)
}

// Fault is implemented by transport results that report a remote failure in-band.
type Fault interface {
	FaultString() string
}

// Named is implemented by requests that know the parameter name they travel under.
type Named interface {
	ParamName() string
}

// DefaultParamName is used for requests that do not implement Named.
const DefaultParamName = "request"

func paramOf(req any) Param {
	if n, ok := req.(Named); ok {
		return Param{Name: n.ParamName(), Value: req}
	}

	return Param{Name: DefaultParamName, Value: req}
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, op string, param Param) (any, error)

func (f TransportFunc) Call(ctx context.Context, op string, param Param) (any, error) {
	return f(ctx, op, param)
}
