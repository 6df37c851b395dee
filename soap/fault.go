package soap

import "fmt"

// Fault is a SOAP 1.1 fault reported by the service.
type Fault struct {
	Code   string
	Reason string
	Actor  string
	// Detail is the untyped content of the detail element, if any.
	Detail any
}

func (f *Fault) FaultString() string {
	if f == nil {
		return ""
	}

	if f.Code == "" {
		return f.Reason
	}

	return f.Code + ": " + f.Reason
}

func (f *Fault) Error() string {
	return "soap fault: " + f.FaultString()
}

func faultFrom(tree map[string]any) *Fault {
	f := &Fault{Detail: tree["detail"]}

	f.Code, _ = tree["faultcode"].(string)
	f.Reason, _ = tree["faultstring"].(string)
	f.Actor, _ = tree["faultactor"].(string)

	return f
}

// HTTPError is a non-2xx response that carried no SOAP fault.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected http status %s", e.Status)
}
