// Package flat implements the flat storage backend: each user's recipes and favorites are a single JSON
// array in a [kv.Store], under the keys "fc_user_recipes:<user id>" and "fc_favorites:<user id>".
//
// There is no schema, so [Store.Init] does nothing. Every mutation is a read-modify-write of the user's
// array; a recipe delete rewrites the recipe and favorite arrays in one [kv.Store.Batch].
//
// Ids are derived from the clock in milliseconds and kept strictly increasing by a per-entity sequence key
// ("fc_sequence:<entity>"), which makes them unique across all users.
package flat
