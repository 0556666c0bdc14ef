package domain

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

type WbsItemType string

const (
	TypeSummary     WbsItemType = "Summary"
	TypeWorkPackage WbsItemType = "WorkPackage"
	TypeActivity    WbsItemType = "Activity"
)

// ValidWbsItemTypes is the canonical set of accepted WBS item type strings.
var ValidWbsItemTypes = map[string]bool{
	"Summary": true, "WorkPackage": true, "Activity": true,
}

// AllowedChildTypes maps a parent type to the child types it may contain.
// Summary nodes aggregate; WorkPackage nodes hold only Activities;
// Activity nodes are leaves.
var AllowedChildTypes = map[WbsItemType][]WbsItemType{
	TypeSummary:     {TypeSummary, TypeWorkPackage},
	TypeWorkPackage: {TypeActivity},
	TypeActivity:    {},
}

// ChildTypeAllowed reports whether a child of type child may be placed
// under a parent of type parent.
func ChildTypeAllowed(parent, child WbsItemType) bool {
	for _, t := range AllowedChildTypes[parent] {
		if t == child {
			return true
		}
	}
	return false
}

type DependencyType string

const (
	DepFinishToStart  DependencyType = "FS"
	DepStartToStart   DependencyType = "SS"
	DepFinishToFinish DependencyType = "FF"
	DepStartToFinish  DependencyType = "SF"
)

// IsValid reports whether d is one of the four precedence types.
func (d DependencyType) IsValid() bool {
	switch d {
	case DepFinishToStart, DepStartToStart, DepFinishToFinish, DepStartToFinish:
		return true
	}
	return false
}
