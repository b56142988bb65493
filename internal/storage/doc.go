// Package storage selects the persistence backend and exposes it through [Service].
//
// # Backend Selection
//
// [Open] reads [shared.StorageConfig]:
//   - "auto" opens SQLite at database.path and falls back to the flat store when the engine cannot be
//     opened (for example a binary built with CGO_ENABLED=0, where go-sqlite3 is a stub)
//   - "sqlite" uses SQLite only and returns [shared.ErrBackendUnavailable] on failure
//   - "flat" uses the key-value store only
//
// The flat store runs on one of three [kv.Store] engines: a directory of JSON files, Redis, or memory.
//
// The choice is made once per [Service]. Callers read it back with [Service.Backend].
//
// # Initialization
//
// Every operation runs [models.Store.Init] first until it succeeds once. A failed Init is retried on the next call.
//
// # Favorites
//
// [Service.AddFavorite] never returns an error: any validation or I/O failure is logged and reported as false.
package storage
