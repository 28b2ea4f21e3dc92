package rbac

// Role is the closed set of membership roles within a hotel. The superuser
// flag lives on the authorization context, not here: it bypasses this table
// entirely and is checked before any lookup.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Resource identifiers guarded by routes.
type Resource string

const (
	ResourceHotels       Resource = "hotels"
	ResourceRooms        Resource = "rooms"
	ResourceGuests       Resource = "guests"
	ResourceReservations Resource = "reservations"
	ResourceAudit        Resource = "audit"
)

// Action identifiers per resource.
type Action string

const (
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionCancel   Action = "cancel"
	ActionCheckin  Action = "checkin"
	ActionCheckout Action = "checkout"
)

// Required expresses what a route demands: every listed action must be
// allowed for every listed resource.
type Required map[Resource][]Action

// rolePermissions defines what each role can do. Every guarded resource has
// an entry for every role, possibly empty (deny).
var rolePermissions = map[Role]map[Resource][]Action{
	RoleOwner: {
		ResourceHotels:       {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
		ResourceRooms:        {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
		ResourceGuests:       {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
		ResourceReservations: {ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionCancel, ActionCheckin, ActionCheckout},
		ResourceAudit:        {ActionRead},
	},
	RoleAdmin: {
		ResourceHotels:       {ActionRead, ActionUpdate},
		ResourceRooms:        {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
		ResourceGuests:       {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
		ResourceReservations: {ActionRead, ActionCreate, ActionUpdate, ActionCancel, ActionCheckin, ActionCheckout},
		ResourceAudit:        {ActionRead},
	},
	RoleMember: {
		ResourceHotels:       {ActionRead},
		ResourceRooms:        {ActionRead},
		ResourceGuests:       {ActionRead, ActionCreate, ActionUpdate},
		ResourceReservations: {ActionRead, ActionCreate, ActionCheckin, ActionCheckout},
		ResourceAudit:        {},
	},
}

// GuardedResources is every resource the table covers, in a stable order.
var GuardedResources = []Resource{
	ResourceHotels, ResourceRooms, ResourceGuests, ResourceReservations, ResourceAudit,
}

// Roles is the closed role set, in descending privilege order.
var Roles = []Role{RoleOwner, RoleAdmin, RoleMember}

// PermissionsFor returns the resource→actions mapping for a role. An unknown
// role yields an empty mapping, never an error: deny by default.
func PermissionsFor(role Role) map[Resource][]Action {
	perms, ok := rolePermissions[role]
	if !ok {
		return map[Resource][]Action{}
	}
	return perms
}

// Allows reports whether the role may perform action on resource.
func Allows(role Role, resource Resource, action Action) bool {
	for _, a := range PermissionsFor(role)[resource] {
		if a == action {
			return true
		}
	}
	return false
}
