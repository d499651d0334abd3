// Package vault keeps originals aside after they have been encrypted.
//
// The vault is a single flat directory. Files are moved into it by rename, so
// the original path stops existing, and an existing entry is never
// overwritten. Retrieval copies an entry out and leaves the vault copy as it
// was. Removal is a separate, explicit action.
//
// A TOML manifest next to the vault records, for every entry, where the
// original lived and which encrypted artifact was produced from it.
//
// The store assumes a single writer: concurrent processes mutating the same
// vault are not coordinated.
package vault
