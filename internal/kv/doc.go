// Package kv provides the key-value engines used by the flat storage backend.
//
// Engines:
//   - [File] : One file per key in a directory; the default, process-local and durable
//   - [Redis] : A Redis database via go-redis; batches are atomic (MULTI/EXEC)
//   - [Memory] : In-process map for tests and throwaway sessions
//
// Keys are opaque strings such as "fc_user_recipes:<user id>". Values are opaque bytes; the flat backend
// stores JSON arrays.
package kv
