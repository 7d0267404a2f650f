// Package audit verifies every stored identity concurrently.
//
// Each identity is checked by its own goroutine, which runs the key, config
// and connection checks in sequence and writes its report into a slot indexed
// by the identity's position in the store listing. The coordinator waits for
// all of them before reading any slot, so the report order always matches the
// enumeration order no matter which probe finishes first. A failing check is
// recorded and never stops the audit.
package audit
