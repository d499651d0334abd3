// Package history records pegvault operations in an append-only text file.
//
// Two line formats are written:
//
//	ENCRYPT: notes.txt -> enc_notes.txt (pegs: 5) | 2024-05-01 10:12:44
//	EVENT (VAULT_STORE): Moved to vault: notes.txt | 2024-05-01 10:12:44
//
// The file only ever grows. Lines are written with a single append call each,
// and a Log serializes its own writers. Concurrent writers in separate
// processes are not coordinated: one process at a time owns a history file.
package history
