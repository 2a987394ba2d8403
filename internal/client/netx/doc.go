// Package netx is the HTTP transport of the client: it attaches the bearer
// token kept in the metadata store to API requests, applies the request
// timeout and probes server liveness.
package netx
