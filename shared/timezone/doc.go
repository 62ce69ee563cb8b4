// Package timezone pins the application clock to APP_TIMEZONE (an IANA name such as
// "UTC" or "Asia/Jakarta"), falling back to UTC when it is unset or unknown.
//
// Timestamps go through Now, ToAppTime and Format. Calendar dates such as check-in and
// check-out are different: Today and ParseDate return midnight UTC, the value a Postgres
// DATE column scans into, so dates compare equal regardless of the configured zone.
package timezone
