// Package api provides the HTTP handlers for the tally API. Handlers decode
// and validate requests, call the services and map their errors to status
// codes and safe messages through HandleAPIError.
package api
