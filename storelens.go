// Package storelens derives a structured brand insights profile for an
// online storefront. It fetches a handful of public pages (homepage, the
// catalog JSON endpoint, policy, FAQ, about and contact pages), runs
// independent heuristic extractors per information category, and aggregates
// the results into a single BrandInsights value with an explicit
// success/partial-failure signal.
//
// This package contains domain types, static pattern tables and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, http/).
package storelens
