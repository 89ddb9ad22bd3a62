// Package groups resolves the group memberships of a host user.
//
// Two interchangeable backends implement Resolver:
//   - NativeResolver parses the host group database (/etc/group) on every call.
//   - ConfiguredResolver reads a JSON document mapping usernames to group names.
//
// New picks one of them from Options once; callers never switch per call.
// Neither backend caches, so every resolution reflects the current state of
// its source. Read and parse failures are returned to the caller, which
// decides how to degrade.
//
// Example usage:
//
//	resolver := groups.New(groups.Options{})
//	names, err := resolver.Resolve(ctx, "alice")
package groups
