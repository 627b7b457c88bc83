// Package batch plans destination paths for a set of media files and links
// them into a library concurrently, isolating each file's failure from the
// rest of the run.
package batch
