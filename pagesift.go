// Package pagesift removes structural page furniture (header, footer, nav)
// from HTML documents while guaranteeing that the primary content region
// (the main element and everything under it) survives untouched. It also
// converts cleaned documents to Markdown for LLM consumption.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, goquery/, sqlite/).
package pagesift
