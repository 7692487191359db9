// Package events defines the scheduling events emitted on the event bus.
//
// Available event types:
//   - RunEvent: one full baseline + leveling pipeline run
//   - SuggestEvent: one capacity-search invocation
package events
