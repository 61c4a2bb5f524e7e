// Package workbench is the coordination layer above the repositories.
//
// Repositories deliberately skip referential checks (parent existence,
// cascade closure, cross-partition cleanup). The workbench owns those
// responsibilities: it plans recursive deletions eagerly, prunes tab state
// and CSV preferences when backing items disappear, cleans feature
// partitions on workspace destruction, and moves file content between the
// store and the filesystem.
package workbench
