// Package encryption applies pegvault's reversible byte shift to files,
// streams and buffers.
//
// Encrypting adds the peg to every byte modulo 256; decrypting subtracts it.
// This is a byte rotation for obfuscation only. It has no key schedule, no
// diffusion and no integrity protection, and must not be relied on for
// confidentiality.
//
// Files are processed in bounded chunks through pooled buffers, and output is
// written to a temporary file that is renamed into place only once the whole
// input has been transformed.
package encryption
