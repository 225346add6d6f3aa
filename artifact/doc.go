// Package artifact persists composed travel guides.
//
// Three backends implement Store:
//
//   - FileStore writes one JSON document per guide (travel_guide_<timestamp>.json)
//   - SQLiteStore keeps guides in a single table via the pure Go sqlite driver
//   - InMemoryStore is a volatile map for tests and ephemeral sessions
//
// Callers should depend on the Store interface so backends can be swapped
// from configuration without touching calling code.
package artifact
