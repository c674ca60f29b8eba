package domain

import (
	"fmt"
	"sort"
)

// Conflict is an account found on more than one roster at once.
type Conflict struct {
	AccountID int64    `json:"account_id"`
	Owners    []string `json:"owners"`
}

// CanAdd decides whether accountID may join targetOwner's roster given the
// caller's view of every roster. It returns nil when allowed, ErrRestrictedRole
// for barred roles, or an *AlreadyOnAnotherTeamError naming the current owner.
//
// The check is only as fresh as all; two sessions racing on stale snapshots can
// both pass it. FindConflicts surfaces the result.
func CanAdd(accountID int64, role RoleTag, targetOwner string, all RosterCollection) error {
	if role.IsRestricted() {
		return fmt.Errorf("%w: %s", ErrRestrictedRole, role)
	}
	target, err := OwnerKey(targetOwner)
	if err != nil {
		return err
	}
	for _, owner := range all.Owners() {
		if owner == target {
			continue
		}
		if all[owner].Contains(accountID) {
			return &AlreadyOnAnotherTeamError{AccountID: accountID, Owner: owner}
		}
	}
	return nil
}

// FindConflicts lists accounts present on two or more rosters, ordered by account.
func FindConflicts(all RosterCollection) []Conflict {
	seen := make(map[int64][]string)
	for _, owner := range all.Owners() {
		for _, m := range all[owner].Members {
			owners := seen[m.AccountID]
			if len(owners) > 0 && owners[len(owners)-1] == owner {
				continue
			}
			seen[m.AccountID] = append(owners, owner)
		}
	}

	var out []Conflict
	for id, owners := range seen {
		if len(owners) > 1 {
			out = append(out, Conflict{AccountID: id, Owners: owners})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out
}
