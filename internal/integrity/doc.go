// Package integrity answers whether two files, or a vaulted original and an
// encrypted artifact, hold the same bytes.
//
// Digests are lowercase hex SHA-256 computed over a stream. Text comparison
// reports the share of matching positions relative to the longer input and
// the first offset at which the inputs differ.
package integrity
