// Package realm holds the live, in-process realm table used by the
// authentication path.
//
// A Table owns every Realm by name and the published origin map. Realms are
// created on first reference with the table's current defaults. The origin
// map is never modified in place: a reload builds a new map and swaps it in
// with PublishOrigins, so lookups see either the old or the new map.
//
// Table locks are held only for in-memory work, never across storage I/O.
package realm
