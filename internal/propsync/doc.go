// Package propsync runs a device's property registry as a service.
//
// The registry itself has no locking. Service wraps it behind a single
// mutex and connects it to the rest of the system:
//
//	             MQTT set/reset
//	                   │
//	                   ▼
//	  ┌─────────── Service ───────────┐
//	  │  View / Update  ─►  Registry  │
//	  └───────┬───────────┬───────────┬┘
//	          ▼           ▼           ▼
//	      snapshot     MQTT state   InfluxDB
//	      (SQLite)     (retained)   property_values
//
// On startup Restore loads the newest snapshot over the schema defaults.
// Every Update diffs the registry before and after the mutation and
// propagates the changed keys. Snapshots are written immediately, or
// batched by the autosave ticker when AutosaveInterval is set. Stop writes
// a final snapshot if anything is still unsaved.
//
// Remote commands:
//
//	graylogic/props/{device}/set    {"setpoint":21.5}      patch
//	graylogic/props/{device}/reset  (empty) or ["setpoint"] reset
//
// Rejected commands, in whole or in part, produce an ErrorReport on
// graylogic/props/{device}/error. Accepted members of a partially failing
// patch stay applied.
package propsync
