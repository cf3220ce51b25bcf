// Package session persists the logical session — identity, role, and
// current access credential — across process restarts.
//
// The package owns the durable copy only; the fast-path in-memory
// credential lives in the root package. Three backends implement the
// [Store] seam: [FileStore] for interactive clients (one JSON record,
// written atomically), [RedisStore] for headless embedders, and
// [MemoryStore] for tests.
//
// Corrupt persisted state must never crash startup: every backend treats a
// missing, unreadable, or structurally invalid record identically to
// "never logged in" and hydrates to absent.
package session
