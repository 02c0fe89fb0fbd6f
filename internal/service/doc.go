// Package service contains the application use cases. Services coordinate
// the domain planners and sequencer with the stores defined in internal/store.
//
// ExerciseService owns in-memory exercise sessions: it builds a plan, drives
// the sequencer with guarded input and emits an events.TypeExerciseSolved event
// once per session. ResultRecorder handles that event and persists the result,
// linking it to a homework item when the session was started from one.
//
// HomeworkService and LeaderboardService are thin read/write layers over the
// stores. Every constructor rejects nil dependencies, and unexpected failures
// are wrapped in a ServiceError that names the service and operation.
package service
