// Package record defines the plain data shapes the toolkit hands to
// callers: attribute records, batch mutation results, and the row-oriented
// table used for reporting exports. These, plus the task package's
// ValidationResult, are the only structured return contracts exposed.
package record
