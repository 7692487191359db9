package cpm

// Package cpm computes the unconstrained critical-path baseline for a task
// working set: a topological order, forward/backward passes producing
// earliest/latest start and finish, slack and criticality per task.
