package metadata

// Role is a contributor role from the Zenodo controlled vocabulary.
type Role string

const (
	RoleContactPerson         Role = "ContactPerson"
	RoleDataCollector         Role = "DataCollector"
	RoleDataCurator           Role = "DataCurator"
	RoleDataManager           Role = "DataManager"
	RoleDistributor           Role = "Distributor"
	RoleEditor                Role = "Editor"
	RoleFunder                Role = "Funder"
	RoleHostingInstitution    Role = "HostingInstitution"
	RoleProducer              Role = "Producer"
	RoleProjectLeader         Role = "ProjectLeader"
	RoleProjectManager        Role = "ProjectManager"
	RoleProjectMember         Role = "ProjectMember"
	RoleRegistrationAgency    Role = "RegistrationAgency"
	RoleRegistrationAuthority Role = "RegistrationAuthority"
	RoleRelatedPerson         Role = "RelatedPerson"
	RoleResearcher            Role = "Researcher"
	RoleResearchGroup         Role = "ResearchGroup"
	RoleRightsHolder          Role = "RightsHolder"
	RoleSupervisor            Role = "Supervisor"
	RoleSponsor               Role = "Sponsor"
	RoleWorkPackageLeader     Role = "WorkPackageLeader"
	RoleOther                 Role = "Other"
)

// Roles lists the accepted contributor role vocabulary.
func Roles() []Role {
	return []Role{
		RoleContactPerson,
		RoleDataCollector,
		RoleDataCurator,
		RoleDataManager,
		RoleDistributor,
		RoleEditor,
		RoleFunder,
		RoleHostingInstitution,
		RoleProducer,
		RoleProjectLeader,
		RoleProjectManager,
		RoleProjectMember,
		RoleRegistrationAgency,
		RoleRegistrationAuthority,
		RoleRelatedPerson,
		RoleResearcher,
		RoleResearchGroup,
		RoleRightsHolder,
		RoleSupervisor,
		RoleSponsor,
		RoleWorkPackageLeader,
		RoleOther,
	}
}

// ParseRole resolves a raw role string against the vocabulary.
func ParseRole(raw string) (Role, bool) {
	for _, r := range Roles() {
		if string(r) == raw {
			return r, true
		}
	}
	return "", false
}
