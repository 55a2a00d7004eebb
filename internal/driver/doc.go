// Package driver wires documents, the parser and fold sessions together:
// single files, whole directories, edit replay between two revisions and
// model snapshots on disk.
package driver
