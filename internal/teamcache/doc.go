// Package teamcache persists per-season team lists.
//
// Entries are keyed "{sport}_{year}" and hold the team list plus the epoch
// second it was fetched. Entries older than TTL are reported as stale rather
// than dropped, so callers can tell a cold cache from an expired one. An empty
// team list is never written over an existing entry.
//
// Backends implement Store: FileStore (a single JSON document on disk),
// MemoryStore, RedisStore, and DynamoStore.
package teamcache
