// Package valuefmt holds the unit table and the display and validation rules
// shared by plan feature configurations and flat plan feature values.
package valuefmt

import "saas-manager-be/internal/entity"

type Unit struct {
	Value    string
	Label    string
	Category string
	pattern  string
}

type UnitCategory struct {
	Value string
	Label string
}

type FieldType struct {
	Value entity.FieldType
	Label string
}

const (
	UnitBoolean = "boolean"

	UnlimitedLabel = "Illimité"
	IncludedLabel  = "Inclus"
	ExcludedLabel  = "Non inclus"
)

var categories = []UnitCategory{
	{Value: "communication", Label: "Communication"},
	{Value: "storage", Label: "Stockage"},
	{Value: "users", Label: "Utilisateurs"},
	{Value: "resources", Label: "Ressources"},
	{Value: "usage", Label: "Utilisation"},
	{Value: "time", Label: "Temps"},
	{Value: "other", Label: "Autre"},
}

var units = []Unit{
	{Value: "emails", Label: "Emails", Category: "communication", pattern: "%s emails/mois"},
	{Value: "sms", Label: "SMS", Category: "communication", pattern: "%s SMS/mois"},
	{Value: "notifications", Label: "Notifications", Category: "communication", pattern: "%s notifications/mois"},
	{Value: "gb", Label: "Go (GB)", Category: "storage", pattern: "%s GB"},
	{Value: "mb", Label: "Mo (MB)", Category: "storage", pattern: "%s MB"},
	{Value: "tb", Label: "To (TB)", Category: "storage", pattern: "%s TB"},
	{Value: "users", Label: "Utilisateurs", Category: "users", pattern: "%s utilisateurs"},
	{Value: "seats", Label: "Sièges", Category: "users", pattern: "%s sièges"},
	{Value: "projects", Label: "Projets", Category: "resources", pattern: "%s projets"},
	{Value: "contacts", Label: "Contacts", Category: "resources", pattern: "%s contacts"},
	{Value: "api_calls", Label: "Appels API", Category: "usage", pattern: "%s appels API/mois"},
	{Value: "requests", Label: "Requêtes", Category: "usage", pattern: "%s requêtes/mois"},
	{Value: "hours", Label: "Heures", Category: "time", pattern: "%s heures"},
	{Value: "days", Label: "Jours", Category: "time", pattern: "%s jours"},
	{Value: UnitBoolean, Label: "Oui/Non", Category: "other"},
}

var fieldTypes = []FieldType{
	{Value: entity.FieldTypeNumber, Label: "Nombre"},
	{Value: entity.FieldTypeString, Label: "Texte"},
	{Value: entity.FieldTypeBoolean, Label: "Oui/Non"},
	{Value: entity.FieldTypeDate, Label: "Date"},
	{Value: entity.FieldTypeEnum, Label: "Liste de choix"},
	{Value: entity.FieldTypeJSON, Label: "JSON"},
}

var unitsByValue = func() map[string]Unit {
	m := make(map[string]Unit, len(units))
	for _, u := range units {
		m[u.Value] = u
	}
	return m
}()

// Units returns a copy of the known unit table in display order.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

func UnitCategories() []UnitCategory {
	out := make([]UnitCategory, len(categories))
	copy(out, categories)
	return out
}

func FieldTypes() []FieldType {
	out := make([]FieldType, len(fieldTypes))
	copy(out, fieldTypes)
	return out
}

func LookupUnit(value string) (Unit, bool) {
	u, ok := unitsByValue[value]
	return u, ok
}

func IsFieldType(t entity.FieldType) bool {
	for _, ft := range fieldTypes {
		if ft.Value == t {
			return true
		}
	}
	return false
}
