// Package project reads, merges and writes Sublime Text project descriptors.
//
// Only the folder paths are interpreted. Settings, build systems, extra
// folder keys and unknown top-level keys are carried through untouched so
// that hand edits survive regeneration.
package project
