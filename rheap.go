// ABOUTME: Main rheap package providing version information and package documentation
// ABOUTME: This is the root package for the heap snapshot retention analyzer

// Package rheap analyzes heap snapshot retention: it parses a snapshot
// into a reference graph, computes the dominator tree, and reports
// which objects retain the most memory via subtree (retained) size
// rather than naive reference counts.
package rheap

// Version is the semantic version of the rheap tool.
const Version = "0.1.0-dev"
