// Package stores provides the config store adapters: one contract, one
// implementation per backend.
//
// A config store persists versioned RdcConfig documents by name. Every
// adapter implements Adapter (Push, Pull, List, Delete, Verify), and the CLI
// depends only on that interface; New picks the implementation from an
// Entry's Kind.
//
// # Backends
//
//   - Git: each operation shallow-clones the configured branch into a
//     temporary directory, works on <path>/<name>.json, and commits and
//     pushes mutations. An empty remote is initialized on first push.
//   - Vault: a HashiCorp Vault KV v2 mount. The document is stored as one
//     string field ("config") holding the JSON, so the schema stays the same
//     across backends.
//
// # Conflict Detection
//
// There is no lock. Push reads the remote document first and refuses to
// overwrite it when its GUID differs (different lineage) or its version is
// strictly newer. Equal versions are re-pushed. Two concurrent pushers can
// both pass the check; the last write wins. That race is accepted: closing it
// would need a lock service, which is what these backends exist to avoid.
//
// # Results
//
// Not-found, corrupt and conflict conditions are reported in the result's
// Err field and never returned as the Go error. The Go error is reserved for
// backend failures (network, auth, git command errors). Verify never fails;
// any problem collapses to false.
package stores
