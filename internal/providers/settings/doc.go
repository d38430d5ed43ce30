// Package settings implements the Settings app: desktop personalization,
// file system backups and factory reset.
//
// Backups are the file system's snapshot JSON, optionally gzipped.
// Restore recognizes gzip by its magic bytes, so either form can be
// imported without saying which it is. Importing or resetting publishes
// system.reinitialized, which closes every window and restores the
// desktop defaults.
package settings
