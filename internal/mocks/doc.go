// Package mocks holds function-field fakes for the stores, services, event
// emitter and auth collaborators shared by the api and service tests.
//
// Most mocks expose one <Method>Fn field per method. A nil field falls back to
// an empty result, or a not-found error for lookups. MockEventEmitter also
// records what it was given so tests can assert on emitted events:
//
//	emitter := &mocks.MockEventEmitter{}
//	// ... solve an exercise ...
//	require.Len(t, emitter.Events(), 1)
package mocks
