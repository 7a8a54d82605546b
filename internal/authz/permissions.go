// internal/authz/permissions.go
package authz

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Глобальные
	Superuser = "superuser"

	// Оборудование (Equipment)
	EquipmentCreate = "equipment:create"
	EquipmentView   = "equipment:view"
	EquipmentUpdate = "equipment:update"
	EquipmentDelete = "equipment:delete"

	// Заявки на выдачу (Loans)
	LoansCreate   = "loans:create"
	LoansView     = "loans:view"
	LoansUpdate   = "loans:update"
	LoansDelete   = "loans:delete"
	LoansApprove  = "loans:approve"
	LoansCheckout = "loans:checkout"
	LoansReturn   = "loans:return"

	// Брони (Reservations)
	ReservationsCreate = "reservations:create"
	ReservationsView   = "reservations:view"
	ReservationsUpdate = "reservations:update"
	ReservationsDelete = "reservations:delete"

	// Пользователи (Users)
	UsersCreate    = "users:create"
	UsersView      = "users:view"
	UsersUpdate    = "users:update"
	UsersDelete    = "users:delete"
	ProfileUpdate  = "profile:update"
	PasswordUpdate = "password:update"

	// Роли (Roles)
	RolesCreate = "roles:create"
	RolesView   = "roles:view"
	RolesUpdate = "roles:update"
	RolesDelete = "roles:delete"

	// Пермишены (Permissions)
	PermissionsView = "permissions:view"

	// Подразделения (Departments)
	DepartmentsCreate = "departments:create"
	DepartmentsView   = "departments:view"
	DepartmentsUpdate = "departments:update"
	DepartmentsDelete = "departments:delete"

	// Справочники (Catalogs: категории оборудования)
	CatalogsCreate = "catalogs:create"
	CatalogsView   = "catalogs:view"
	CatalogsUpdate = "catalogs:update"
	CatalogsDelete = "catalogs:delete"

	// Аналитика и отчеты
	DashboardView        = "dashboard:view"
	ReportsView          = "reports:view"
	AnalyticsView        = "analytics:view"
	AnalyticsRecalculate = "analytics:recalculate"
	ReliabilityView      = "reliability:view"
	AlertsView           = "alerts:view"
	AlertsAck            = "alerts:ack"

	// Модификаторы Области (Scopes)
	ScopeOwn        = "scope:own"
	ScopeDepartment = "scope:department"
	ScopeAll        = "scope:all"
)
