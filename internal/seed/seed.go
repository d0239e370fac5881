// Package seed provides the first-run data used when the store holds no
// persisted copy yet.
package seed

import "github.com/afjrotc/logistics/internal/model"

func strptr(s string) *string { return &s }

// Items returns a fresh copy of the sample inventory.
func Items() []model.Item {
	return []model.Item{
		{ID: 1, Category: model.CategoryBlues, Name: "Service Dress Coat", Quantity: 15, InUse: 3, AssignedTo: strptr("Cadet Johnson"), Condition: model.ConditionGood, Location: "Supply Room A", Notes: "Various sizes", LastUpdated: "2025-10-20"},
		{ID: 2, Category: model.CategoryBlues, Name: "Flight Cap", Quantity: 25, InUse: 0, Condition: model.ConditionNew, Location: "Supply Room A", Notes: "Sizes 6-8", LastUpdated: "2025-10-18"},
		{ID: 3, Category: model.CategoryDrill, Name: "Drill Rifle (Daisy)", Quantity: 12, InUse: 12, AssignedTo: strptr("Drill Team"), Condition: model.ConditionGood, Location: "Armory", Notes: "Inspected monthly", LastUpdated: "2025-10-25"},
		{ID: 4, Category: model.CategoryPT, Name: "PT Shirt (S)", Quantity: 20, InUse: 5, Condition: model.ConditionGood, Location: "PE Storage", LastUpdated: "2025-10-15"},
		{ID: 5, Category: model.CategoryMarksmanship, Name: "Air Rifle", Quantity: 8, InUse: 0, Condition: model.ConditionGood, Location: "Range Locker", Notes: "Competition grade", LastUpdated: "2025-10-22"},
		{ID: 6, Category: model.CategoryAwards, Name: "Ribbon Rack Set", Quantity: 50, InUse: 12, Condition: model.ConditionNew, Location: "Office Cabinet", Notes: "Awards ceremony", LastUpdated: "2025-10-10"},
		{ID: 7, Category: model.CategoryOCP, Name: "OCP Patrol Cap", Quantity: 18, InUse: 2, Condition: model.ConditionGood, Location: "Supply Room B", LastUpdated: "2025-10-19"},
		{ID: 8, Category: model.CategoryField, Name: "Folding Table", Quantity: 6, InUse: 0, Condition: model.ConditionNeedsRepair, Location: "Garage", Notes: "One table leg damaged", LastUpdated: "2025-10-23"},
	}
}

// AllowedEmails returns a fresh copy of the default allow-list.
func AllowedEmails() []model.AllowedEmail {
	return []model.AllowedEmail{
		{Email: "instructor@school.edu", Role: model.RoleAdmin, Name: "Instructor Davis"},
		{Email: "logistics@school.edu", Role: model.RoleLogistics, Name: "C/MSgt Rodriguez"},
		{Email: "cadet@school.edu", Role: model.RoleCadet, Name: "C/Amn Smith"},
	}
}
