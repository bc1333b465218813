// Package lock handles the .sources.lock.yaml record written into the
// external sources directory after a successful run. It lists which source
// archives were extracted where, so status reports reflect what is on disk.
package lock
