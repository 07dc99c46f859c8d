package domain

// Choice pairs a stored value with its human-readable label. All
// enumerations used for validation and display share these catalogs so
// form and model layers cannot drift apart.
type Choice struct {
	Value string
	Label string
}

// LabelFor returns the label for value, falling back to the raw value
// when it is not part of the choice set (tolerates legacy data).
func LabelFor(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// Contains reports whether value is a member of the choice set.
func Contains(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// PriorityChoices enumerates ticket urgency levels.
var PriorityChoices = []Choice{
	{Value: "low", Label: "Low"},
	{Value: "medium", Label: "Medium"},
	{Value: "high", Label: "High"},
}

// StatusChoices enumerates ticket lifecycle states.
var StatusChoices = []Choice{
	{Value: "open", Label: "Open"},
	{Value: "in_progress", Label: "In Progress"},
	{Value: "dev", Label: "Development"},
	{Value: "closed", Label: "Closed"},
}

// CategoryTypeChoices splits tickets into client-facing and internal
// agency issues.
var CategoryTypeChoices = []Choice{
	{Value: "client", Label: "Client"},
	{Value: "agency", Label: "Agency"},
}

// ClientCategoryChoices are valid when category_type is "client".
var ClientCategoryChoices = []Choice{
	{Value: "complaint", Label: "Complaint"},
	{Value: "query", Label: "Query"},
	{Value: "request", Label: "Request"},
}

// AgencyCategoryChoices are valid when category_type is "agency".
var AgencyCategoryChoices = []Choice{
	{Value: "consultant_error", Label: "Consultant Error"},
	{Value: "supplier_error", Label: "Supplier Error"},
	{Value: "supplier_query", Label: "Supplier Query"},
	{Value: "system_error", Label: "System Error"},
	{Value: "system_query", Label: "System Query"},
	{Value: "system_enhancement", Label: "System Enhancement"},
}

// ActionTypeChoices enumerates manual ticket action kinds.
var ActionTypeChoices = []Choice{
	{Value: "action_taken", Label: "Action Taken"},
	{Value: "update", Label: "Update"},
	{Value: "response", Label: "Response"},
	{Value: "outcome", Label: "Outcome"},
}

// CategoryChoicesFor returns the category set implied by categoryType,
// or nil for an unknown type.
func CategoryChoicesFor(categoryType TicketCategoryType) []Choice {
	switch categoryType {
	case CategoryTypeClient:
		return ClientCategoryChoices
	case CategoryTypeAgency:
		return AgencyCategoryChoices
	default:
		return nil
	}
}

// CategoryLabel resolves the display label for a category given its
// category type, falling back to the raw value.
func CategoryLabel(categoryType TicketCategoryType, category string) string {
	choices := CategoryChoicesFor(categoryType)
	if choices == nil {
		return category
	}
	return LabelFor(choices, category)
}
