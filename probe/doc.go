// Package probe contains the individual record resolvers for domainkit.
// Each type issues its own lookups with its own timeout and normalizes
// the raw answers into the result structs from the types package.
// These types can be used directly, but the recommended approach is
// to use the fluent builder API from the github.com/optimode/domainkit package.
package probe
