package models

// SortOrder — направление сортировки списков.
type SortOrder string

const (
	// SortAsc — по возрастанию.
	SortAsc SortOrder = "asc"
	// SortDesc — по убыванию.
	SortDesc SortOrder = "desc"
)

// ListFilter — параметры поиска и сортировки списков пользователей и магазинов.
// Пустые поля означают отсутствие фильтра; сортировка по умолчанию: createdAt desc.
type ListFilter struct {
	Search    string
	Role      Role
	SortBy    string
	SortOrder SortOrder
}
