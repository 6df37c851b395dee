// Package diagnostic collects what the hydrator notices while overlaying a payload:
// ignored keys with their closest known names, lossy coercions and values whose
// shape does not fit the target field. In strict mode the recorded errors are
// combined into a single error by Diagnostics.Err.
package diagnostic
