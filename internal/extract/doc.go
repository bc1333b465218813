// Package extract unpacks dependency source archives into the external
// sources directory and marks the extracted files read-only.
//
// Every extraction starts from an empty directory so that sources of removed
// dependencies never survive a run. Archives that map onto the same
// directory name are unpacked over each other; the later archive wins and
// the collision is reported in the Result.
//
// Files written into the tree after extraction, such as the sources lock,
// are protected with MarkFileReadOnly.
package extract
