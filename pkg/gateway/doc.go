// Package gateway is the HTTP client for a LiteLLM-style gateway's model
// catalog endpoint.
//
// It contains:
//   - [Client] with bearer auth, custom headers and a single [Client.FetchCatalog] call
//   - [RequestError] for non-2xx responses and [FormatError] for bodies without a data array
//
// The client never retries. A zero [Client.Timeout] leaves the request bound
// only by its context.
package gateway
