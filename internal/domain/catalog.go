package domain

// CatalogEntry is a static id→name reference used by equipment records.
type CatalogEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var equipmentCategories = []CatalogEntry{
	{ID: 1, Name: "Production Machinery"},
	{ID: 2, Name: "HVAC Systems"},
	{ID: 3, Name: "Electrical Systems"},
	{ID: 4, Name: "IT Equipment"},
	{ID: 5, Name: "Safety Equipment"},
	{ID: 6, Name: "Material Handling"},
}

var departments = []CatalogEntry{
	{ID: 1, Name: "Production"},
	{ID: 2, Name: "Warehouse"},
	{ID: 3, Name: "Administration"},
	{ID: 4, Name: "R&D"},
	{ID: 5, Name: "Quality Control"},
}

var locations = []CatalogEntry{
	{ID: 1, Name: "Building A - Floor 1"},
	{ID: 2, Name: "Building A - Floor 2"},
	{ID: 3, Name: "Building B - Floor 1"},
	{ID: 4, Name: "Warehouse"},
	{ID: 5, Name: "Server Room"},
}

// EquipmentCategories returns the category reference list.
func EquipmentCategories() []CatalogEntry {
	return equipmentCategories
}

// Departments returns the department reference list.
func Departments() []CatalogEntry {
	return departments
}

// Locations returns the location reference list.
func Locations() []CatalogEntry {
	return locations
}

// CatalogName resolves an id within a catalog; empty string when absent.
func CatalogName(entries []CatalogEntry, id int64) string {
	for _, entry := range entries {
		if entry.ID == id {
			return entry.Name
		}
	}
	return ""
}
