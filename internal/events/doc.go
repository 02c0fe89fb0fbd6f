// Package events decouples the code that notices something happened from the
// code that reacts to it.
//
// The exercise service emits TypeExerciseSolved when a learner finishes an
// exercise; a result recorder registered on the InMemoryEventEmitter persists
// the score and links homework items. Emitters never import handlers.
package events
