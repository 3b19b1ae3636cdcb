// Package backup models the archives found in one storage tier.
//
// A Record is a single archive file whose logical name and calendar date were
// recovered from its filename by a Parser. An Inventory groups the records of
// one tier (daily or monthly) by logical name and keeps the newest record per
// name so that promotion decisions never have to scan a name's history.
//
// Ages are always measured against a run-start timestamp supplied by the
// caller, never against the wall clock, so every decision made during one run
// agrees with every other one.
package backup
