// Package audit persists a durable trail of enforcement decisions.
//
// The gateway emits one event per enforcement call; the Recorder turns
// events into records and writes them asynchronously so the enforcement
// path never blocks on storage. Retention of the trail is enforced by the
// Pruner, by age and by record count, optionally on a cron schedule.
package audit
