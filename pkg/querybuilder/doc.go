// Package querybuilder turns list-endpoint query parameters into a validated,
// paginated, sorted and filtered query, runs it against a Collection and wraps
// the page in a response envelope.
//
// Only fields named in a Config allow-list can be sorted, filtered or
// searched. An unknown sort field is rejected with a ValidationError while an
// unknown filter key is silently ignored.
package querybuilder
