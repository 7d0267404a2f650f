// Package filesystem provides filesystem implementations for gim.
//
// NewOS works on the real filesystem. NewMemory keeps everything in an afero
// MemMapFs and is used by tests that do not need real files.
package filesystem
