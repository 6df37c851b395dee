// Package soap is a minimal SOAP 1.1 transport for the operation-history service.
//
// Requests are RPC-style envelopes: the operation element wraps one named parameter,
// marshalled with encoding/xml. Responses are not bound to Go types here; they are
// decoded into untyped trees (see DecodeTree) for the hydrate package to type.
// A SOAP fault is returned as a *Fault value rather than an error, so that retry
// treats it as a failed attempt.
package soap
