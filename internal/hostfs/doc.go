// Package hostfs reads files that belong to the host account databases.
//
// All reads are bounded by a timeout so a hung filesystem (NFS home, stale
// bind mount) cannot stall a login indefinitely. When the process runs in a
// container with the host filesystem mounted elsewhere, a root prefix maps
// the well-known paths into that mount:
//
//	Path("", EtcGroupRel)      -> /etc/group
//	Path("/host", EtcGroupRel) -> /host/etc/group
package hostfs
