// Package postal declares the record schema of the parcel operation-history service:
// the response records, the read and write request types and the authorization header.
//
// Every nested record is a value field, so a record obtained from hydrate.Default or
// hydrated from a response always carries all of its sub-records.
package postal
