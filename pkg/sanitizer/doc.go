// Package sanitizer normalizes hotel catalog input before validation and
// storage.
//
// All normalization functions are idempotent. Invalid input is handled by
// returning an empty value rather than an error; validation decides whether
// an empty value is acceptable.
//
// Normalization includes:
//   - Names and locations: trim and collapse internal whitespace
//   - Room types: whitespace-normalized, case preserved
//   - Amenities: lowercase, duplicates and empty values removed
//   - Phone numbers: E.164 (+[country][number])
//   - Prices: rounded to cents
package sanitizer
