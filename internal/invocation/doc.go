// Package invocation extracts tool invocations from free-form assistant text.
//
// Wire format:
//
//	```<indicator> <optional parameter>
//	<content>
//	```
//
// Blocks are scanned left to right in a single pass. Nested fences are not
// supported: a fence inside a body closes the block. Malformed candidates
// (no header line, blank header, no closing fence) produce nothing.
package invocation
