// Package domain contains the core entities of the arithmetic practice
// service: operations, solved exercise results, homework assignments and
// leaderboard rows. The planners, the input guard and the step sequencer live
// in the plan, guard and sequencer subpackages and have no dependencies
// outside the standard library.
package domain
