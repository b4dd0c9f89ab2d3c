// Package places provides a net/http handler that answers place autocomplete
// queries with JSON options for form inputs.
//
// The default handler responds to GET and HEAD requests, applies the minimum
// query length before consulting the configured source, and always answers
// 200 with a {"data": [...]} envelope so widgets can treat lookup failures as
// an empty result. A Redis lookaside cache can be layered over any source via
// NewCachedSource.
package places
