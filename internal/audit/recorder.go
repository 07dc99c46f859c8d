// Package audit computes field-level diffs between two snapshots of a
// ticket and renders them as human-readable change lines. It performs
// no I/O: reference display names are resolved by the caller and
// captured at snapshot time.
package audit

import (
	"fmt"
	"strings"

	"github.com/travault/crm-service/internal/domain"
)

// NoneDisplay is rendered for absent reference fields.
const NoneDisplay = "None"

// Refs carries pre-resolved display strings for the ticket's reference
// fields. Empty strings mean the reference is absent and render as
// NoneDisplay.
type Refs struct {
	Company    string
	Contact    string
	Agency     string
	Owner      string
	AssignedTo string
	Subject    string
}

// Field is one comparable snapshot entry. Value is the raw stored
// value used for equality; Display is what change lines render.
type Field struct {
	Name    string
	Value   string
	Display string
}

// Snapshot is an ordered capture of a ticket's auditable fields.
// Bookkeeping fields (created_at, updated_at, updated_by) are never
// captured. Field order follows the ticket's declaration order so that
// diff output is deterministic.
type Snapshot struct {
	fields []Field
}

// NewSnapshot captures the auditable fields of t.
func NewSnapshot(t *domain.Ticket, refs Refs) Snapshot {
	return Snapshot{fields: []Field{
		refField("company", t.CompanyID, refs.Company),
		refField("contact", deref(t.ContactID), refs.Contact),
		refField("agency", t.AgencyID, refs.Agency),
		refField("owner", t.OwnerID, refs.Owner),
		refField("assigned_to", deref(t.AssignedToID), refs.AssignedTo),
		choiceField("priority", string(t.Priority), domain.PriorityChoices),
		choiceField("category_type", string(t.CategoryType), domain.CategoryTypeChoices),
		{
			Name:    "category",
			Value:   t.Category,
			Display: domain.CategoryLabel(t.CategoryType, t.Category),
		},
		refField("subject", t.SubjectID, refs.Subject),
		{Name: "description", Value: t.Description, Display: t.Description},
		choiceField("status", string(t.Status), domain.StatusChoices),
	}}
}

// Fields exposes the captured entries in declaration order.
func (s Snapshot) Fields() []Field {
	return s.fields
}

// Changes compares two snapshots and returns one line per changed
// field, in the new snapshot's field order. Calling it twice on the
// same inputs yields identical output.
func Changes(oldSnap, newSnap Snapshot) []string {
	oldByName := make(map[string]Field, len(oldSnap.fields))
	for _, f := range oldSnap.fields {
		oldByName[f.Name] = f
	}

	var lines []string
	for _, newField := range newSnap.fields {
		oldField, ok := oldByName[newField.Name]
		if !ok || oldField.Value == newField.Value {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s changed from '%s' to '%s'",
			HumanizeField(newField.Name), oldField.Display, newField.Display))
	}
	return lines
}

// Summary joins change lines into the multi-line details text stored on
// a system-generated action.
func Summary(lines []string) string {
	return strings.Join(lines, "\n")
}

// HumanizeField replaces underscores with spaces and capitalizes the
// first letter only ("assigned_to" -> "Assigned to").
func HumanizeField(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func refField(name, id, display string) Field {
	if display == "" {
		display = NoneDisplay
	}
	return Field{Name: name, Value: id, Display: display}
}

func choiceField(name, value string, choices []domain.Choice) Field {
	return Field{Name: name, Value: value, Display: domain.LabelFor(choices, value)}
}
