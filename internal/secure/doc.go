// Package secure keeps static credentials out of ordinary heap memory.
//
// Secrets handed to the provider through settings (today only the AWS secret
// access key) are moved into a memguard enclave as soon as they are parsed.
// The enclave is encrypted with XSalsa20Poly1305 and, where the platform
// allows, locked against swapping. The plaintext only exists while the store
// client is being built and is wiped again right after.
//
// Linux needs a sufficient RLIMIT_MEMLOCK for locking; without it memguard
// falls back to ordinary memory and the enclave is still encrypted.
package secure
