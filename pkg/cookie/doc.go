// Package cookie writes and reads HTTP cookies, optionally encrypted.
//
// Encrypted values use AES-256-GCM with a key derived from each secret via
// HKDF-SHA256. The first secret encrypts; every secret is tried when
// decrypting so that secrets can be rotated by prepending a new one.
//
//	m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
//	err = m.SetEncrypted(w, "sid", sessionID)
//	id, err := m.GetEncrypted(r, "sid")
//
// Seal and Open expose the same encryption for values carried outside
// cookies, such as session tokens in request headers.
package cookie
