package seeders

var permissionsData = []struct {
	Name        string
	Description string
}{
	// --- Общие права ---
	{Name: "superuser", Description: "Суперпользователь (полный доступ)"},

	// --- Оборудование ---
	{Name: "equipment:create", Description: "Создание оборудования"},
	{Name: "equipment:view", Description: "Просмотр оборудования"},
	{Name: "equipment:update", Description: "Обновление оборудования"},
	{Name: "equipment:delete", Description: "Удаление оборудования"},

	// --- Заявки на выдачу ---
	{Name: "loans:create", Description: "Создание заявок на выдачу"},
	{Name: "loans:view", Description: "Просмотр заявок на выдачу"},
	{Name: "loans:update", Description: "Обновление заявок на выдачу"},
	{Name: "loans:delete", Description: "Удаление заявок на выдачу"},
	{Name: "loans:approve", Description: "Одобрение и отклонение заявок"},
	{Name: "loans:checkout", Description: "Выдача оборудования на руки"},
	{Name: "loans:return", Description: "Прием возврата оборудования"},

	// --- Брони ---
	{Name: "reservations:create", Description: "Создание броней"},
	{Name: "reservations:view", Description: "Просмотр броней"},
	{Name: "reservations:update", Description: "Обновление броней"},
	{Name: "reservations:delete", Description: "Удаление броней"},

	// --- Пользователи ---
	{Name: "users:create", Description: "Создание пользователей"},
	{Name: "users:view", Description: "Просмотр пользователей"},
	{Name: "users:update", Description: "Обновление пользователей"},
	{Name: "users:delete", Description: "Удаление пользователей"},
	{Name: "profile:update", Description: "Обновление своего профиля"},
	{Name: "password:update", Description: "Обновление своего пароля"},

	// --- Роли и Права ---
	{Name: "roles:create", Description: "Создание ролей"},
	{Name: "roles:view", Description: "Просмотр ролей"},
	{Name: "roles:update", Description: "Обновление ролей"},
	{Name: "roles:delete", Description: "Удаление ролей"},
	{Name: "permissions:view", Description: "Просмотр списка всех прав"},

	// --- Подразделения ---
	{Name: "departments:create", Description: "Создание подразделений"},
	{Name: "departments:view", Description: "Просмотр подразделений"},
	{Name: "departments:update", Description: "Обновление подразделений"},
	{Name: "departments:delete", Description: "Удаление подразделений"},

	// --- Справочники ---
	{Name: "catalogs:create", Description: "Создание категорий оборудования"},
	{Name: "catalogs:view", Description: "Просмотр категорий оборудования"},
	{Name: "catalogs:update", Description: "Обновление категорий оборудования"},
	{Name: "catalogs:delete", Description: "Удаление категорий оборудования"},

	// --- Аналитика и отчеты ---
	{Name: "dashboard:view", Description: "Просмотр дашборда"},
	{Name: "reports:view", Description: "Просмотр и выгрузка отчетов"},
	{Name: "analytics:view", Description: "Просмотр аналитики использования"},
	{Name: "analytics:recalculate", Description: "Ручной пересчет аналитики"},
	{Name: "reliability:view", Description: "Просмотр рейтингов надежности"},
	{Name: "alerts:view", Description: "Просмотр алертов"},
	{Name: "alerts:ack", Description: "Подтверждение алертов"},

	// --- Модификаторы области ---
	{Name: "scope:own", Description: "Область видимости: только свои записи"},
	{Name: "scope:department", Description: "Область видимости: свое подразделение"},
	{Name: "scope:all", Description: "Область видимости: все записи"},
}

var rolesData = []struct {
	Name        string
	Description string
}{
	{Name: "SuperAdmin", Description: "Полный доступ ко всем функциям системы"},
	{Name: "Администратор", Description: "Управление пользователями, ролями и справочниками"},
	{Name: "Кладовщик", Description: "Работа пункта выдачи: одобрение, выдача и прием оборудования"},
	{Name: "Преподаватель", Description: "Заявки и брони, видимость в рамках подразделения"},
	{Name: "Студент", Description: "Собственные заявки и брони"},
}

// getRolePermissionsMap определяет базовые связи ролей и прав.
// Сидер добавляет недостающие связи, ничего не удаляя.
func getRolePermissionsMap() map[string][]string {
	return map[string][]string{
		"SuperAdmin": {"superuser"},
		"Администратор": {
			"scope:all",
			"users:create", "users:view", "users:update", "users:delete",
			"roles:create", "roles:view", "roles:update", "roles:delete", "permissions:view",
			"departments:create", "departments:view", "departments:update", "departments:delete",
			"catalogs:create", "catalogs:view", "catalogs:update", "catalogs:delete",
			"equipment:create", "equipment:view", "equipment:update", "equipment:delete",
			"loans:view", "reservations:view",
			"dashboard:view", "reports:view",
			"analytics:view", "analytics:recalculate", "reliability:view",
			"alerts:view", "alerts:ack",
		},
		"Кладовщик": {
			"scope:all",
			"equipment:view", "equipment:update",
			"loans:view", "loans:update", "loans:approve", "loans:checkout", "loans:return",
			"reservations:view", "reservations:update",
			"dashboard:view", "reliability:view", "alerts:view", "alerts:ack",
			"catalogs:view",
		},
		"Преподаватель": {
			"scope:department",
			"loans:create", "loans:view", "loans:update",
			"reservations:create", "reservations:view", "reservations:update",
			"equipment:view", "catalogs:view",
			"profile:update", "password:update",
		},
		"Студент": {
			"scope:own",
			"loans:create", "loans:view",
			"reservations:create", "reservations:view",
			"equipment:view", "catalogs:view",
			"profile:update", "password:update",
		},
	}
}

var categoriesData = []struct {
	Name        string
	Description string
}{
	{Name: "Ноутбуки", Description: "Переносные компьютеры для учебных занятий"},
	{Name: "Проекторы", Description: "Мультимедийные проекторы"},
	{Name: "Фототехника", Description: "Фотоаппараты, объективы, штативы"},
	{Name: "Аудиотехника", Description: "Микрофоны, рекордеры, колонки"},
	{Name: "Лабораторное оборудование", Description: "Измерительные приборы и стенды"},
}

var departmentsData = []string{
	"Факультет информационных технологий",
	"Физический факультет",
	"Факультет журналистики",
	"Медиацентр",
}

var equipmentData = []struct {
	InventoryNumber string
	Name            string
	Category        string
	Location        string
}{
	{InventoryNumber: "NB-0001", Name: "Ноутбук Lenovo ThinkPad T14", Category: "Ноутбуки", Location: "Склад А, стеллаж 1"},
	{InventoryNumber: "NB-0002", Name: "Ноутбук HP ProBook 450", Category: "Ноутбуки", Location: "Склад А, стеллаж 1"},
	{InventoryNumber: "PR-0001", Name: "Проектор Epson EB-X51", Category: "Проекторы", Location: "Склад А, стеллаж 2"},
	{InventoryNumber: "PH-0001", Name: "Фотоаппарат Canon EOS 250D", Category: "Фототехника", Location: "Склад Б, сейф 1"},
	{InventoryNumber: "AU-0001", Name: "Рекордер Zoom H5", Category: "Аудиотехника", Location: "Склад Б, стеллаж 3"},
	{InventoryNumber: "LB-0001", Name: "Осциллограф Rigol DS1054Z", Category: "Лабораторное оборудование", Location: "Лаборатория 204"},
}
