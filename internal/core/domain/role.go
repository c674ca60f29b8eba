package domain

// RoleTag is a clan position as reported by the stats provider.
type RoleTag string

const (
	RoleCommander           RoleTag = "commander"
	RoleExecutiveOfficer    RoleTag = "executive_officer"
	RolePersonnelOfficer    RoleTag = "personnel_officer"
	RoleCombatOfficer       RoleTag = "combat_officer"
	RoleIntelligenceOfficer RoleTag = "intelligence_officer"
	RoleQuartermaster       RoleTag = "quartermaster"
	RoleRecruitmentOfficer  RoleTag = "recruitment_officer"
	RoleJuniorOfficer       RoleTag = "junior_officer"
	RolePrivate             RoleTag = "private"
	RoleRecruit             RoleTag = "recruit"
	RoleReservist           RoleTag = "reservist"
)

// unrankedRole is the rank given to tags outside the known set so they sort last.
const unrankedRole = 99

var roleRank = map[RoleTag]int{
	RoleCommander:           1,
	RoleExecutiveOfficer:    2,
	RolePersonnelOfficer:    3,
	RoleCombatOfficer:       4,
	RoleIntelligenceOfficer: 5,
	RoleQuartermaster:       6,
	RoleRecruitmentOfficer:  7,
	RoleJuniorOfficer:       8,
	RolePrivate:             9,
	RoleRecruit:             10,
	RoleReservist:           11,
}

// restrictedRoles may never be placed on a team roster. Personnel and
// intelligence officers are deliberately absent.
var restrictedRoles = map[RoleTag]struct{}{
	RoleCommander:          {},
	RoleExecutiveOfficer:   {},
	RoleCombatOfficer:      {},
	RoleQuartermaster:      {},
	RoleRecruitmentOfficer: {},
	RoleJuniorOfficer:      {},
}

var roleLabels = map[RoleTag]string{
	RoleCommander:           "Comandante",
	RoleExecutiveOfficer:    "Oficial Ejecutivo",
	RolePersonnelOfficer:    "Oficial de Personal",
	RoleCombatOfficer:       "Oficial de Combate",
	RoleIntelligenceOfficer: "Oficial de Inteligencia",
	RoleQuartermaster:       "Intendente",
	RoleRecruitmentOfficer:  "Oficial de Reclutamiento",
	RoleJuniorOfficer:       "Oficial Junior",
	RolePrivate:             "Soldado",
	RoleRecruit:             "Recluta",
	RoleReservist:           "Reservista",
}

// AllRoles returns every known tag in rank order.
func AllRoles() []RoleTag {
	return []RoleTag{
		RoleCommander, RoleExecutiveOfficer, RolePersonnelOfficer, RoleCombatOfficer,
		RoleIntelligenceOfficer, RoleQuartermaster, RoleRecruitmentOfficer, RoleJuniorOfficer,
		RolePrivate, RoleRecruit, RoleReservist,
	}
}

// Rank is the fixed sort position of the tag (1 = commander). Unknown tags rank 99.
func (r RoleTag) Rank() int {
	if n, ok := roleRank[r]; ok {
		return n
	}
	return unrankedRole
}

// IsRestricted reports whether members holding this tag are barred from teams.
func (r RoleTag) IsRestricted() bool {
	_, ok := restrictedRoles[r]
	return ok
}

// Label returns the display label, falling back to the raw tag.
func (r RoleTag) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}
