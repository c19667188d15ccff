// Package pkg provides the core libraries for adforge campaign asset generation.
//
// # Overview
//
// adforge turns a declarative campaign brief into a matrix of rendered,
// compliance-checked image assets, one per product, aspect ratio, and
// locale. The pkg directory is organized into four main areas:
//
//  1. [brief], [ratio] - Domain model (campaign briefs, the aspect ratio catalog)
//  2. [genimage], [compose], [compliance] - Asset production (source resolution, compositing, checks)
//  3. [generate], [assets] - Orchestration and persistence (the run loop, output layout, reporting)
//  4. [cache], [config], [httputil], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through adforge:
//
//	Campaign Brief (JSON/TOML)
//	         ↓
//	    [brief] package (parse + validate)
//	         ↓
//	    [generate] package (per locale x product x ratio)
//	         ↓
//	    [genimage] package (reuse / AI generate / placeholder)
//	         ↓
//	    [compose] + [compliance] packages (overlays, checks)
//	         ↓
//	    [assets] package (PNG files + generation report)
package pkg
