// Package sanitizer provides input normalization functions for profile data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully, typically by returning
// empty strings or empty slices rather than errors.
//
// The package is shared across services for consistent data normalization before
// validation and storage.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Handles: Lowercase, keep letters/digits/hyphens - "Ada Lovelace" becomes "ada-lovelace"
//   - URLs: Enforce HTTPS, lowercase domains, preserve paths and query parameters
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
