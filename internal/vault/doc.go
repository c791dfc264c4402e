// Package vault provides encrypted storage for team, machine, organization
// and named secret documents, and for the consolidated state.json, on top of
// the objectstore primitive.
//
// # Envelope Encryption
//
// With a master password, every payload is serialized to JSON and sealed
// into a self-contained envelope:
//
//	{"v":1,"alg":"xchacha20-poly1305","kdf":"argon2id","t":1,"m":65536,"p":4,
//	 "salt":"...","iv":"...","ciphertext":"...","tag":"..."}
//
// The key is derived from the password with Argon2id. Each envelope carries
// its own KDF parameters and salt, so any password holder can open it. A
// fresh random IV is drawn for every seal, so identical plaintexts never
// produce identical bytes. The Poly1305 tag makes a wrong password or a
// tampered blob fail with ErrDecryptFailed instead of yielding garbage.
//
// Without a master password, payloads are stored as plain JSON. Reading an
// envelope without a password fails with ErrPasswordRequired; reading plain
// JSON with a password succeeds, so stores can be migrated gradually.
//
// # State Document
//
// state.json keeps section names and record names in plaintext even when
// encrypted; only each record's value (and the ssh object) is an envelope
// string. This lets tools list machines without the password, at the cost
// of exposing their names.
package vault
