// Package retry invokes remote operations through a Transport with a bounded,
// fixed-delay retry budget and hydrates the outcome into a typed response.
//
// An attempt fails when the transport returns an error, returns nothing, or returns a
// value implementing Fault. Attempts are strictly sequential; the executor sleeps for
// the configured delay between attempts but never after the last one. With the
// defaults (10 attempts, 5s delay) a call blocks for at most 45s of sleeping.
//
// When every attempt fails, Call returns the default response together with an
// *ExhaustedError. Callers that only want the response may ignore the error: the
// response is always fully shaped.
package retry
