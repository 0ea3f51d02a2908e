// Package entities provides the core domain types shared by the bridge:
// opaque host handles, element-type tags, the tagged-result encoding and the
// structured error detail used in diagnostics.
package entities
