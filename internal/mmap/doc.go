// Package mmap maps dataset files read-only into memory.
//
//	m, err := mmap.Open("points.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// On Unix the file is mapped with mmap(2) and hints are passed through
// madvise(2). Other platforms read the file into a heap buffer and ignore
// hints.
package mmap
