// Package mmfile maps content files into memory. On unix the file is mapped
// read-only with golang.org/x/sys/unix; elsewhere it is read into a buffer.
package mmfile
