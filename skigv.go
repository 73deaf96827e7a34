// Package skigv extracts typed records from the public website of the
// Gorny Vozdukh ski resort (ski-gv.ru). It locates domain-relevant fragments
// in inconsistent markup via ordered fallback selector chains, normalizes
// their content, and resolves site-specific quirks into stable typed output:
// zones and tracks, lift schedules, a weather snapshot, restaurant profiles,
// eco-trails, and the ski-pass price catalog.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, crawl/).
package skigv
