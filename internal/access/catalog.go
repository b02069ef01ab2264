package access

// PermissionsFor returns the cumulative read permissions granted to a
// role: one read permission per task scope at or below the role in the
// ladder. Higher roles therefore always hold a superset of every lower
// role's set. Only the read ladder is granted implicitly; write and
// delete capabilities must be attached explicitly at token issuance.
func PermissionsFor(role Role) Set {
	set := make(Set, int(role)+1)
	for _, r := range Roles() {
		if r > role {
			break
		}
		set[Read(r.scopeTag())] = struct{}{}
	}
	return set
}
