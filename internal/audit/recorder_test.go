package audit_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/audit"
	"github.com/travault/crm-service/internal/domain"
)

func sampleTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:           "t1",
		AgencyID:     "a1",
		CompanyID:    "c1",
		OwnerID:      "u1",
		Priority:     domain.TicketPriorityLow,
		CategoryType: domain.CategoryTypeClient,
		Category:     "complaint",
		SubjectID:    "s1",
		Description:  "printer on fire",
		Status:       domain.TicketStatusOpen,
	}
}

func sampleRefs() audit.Refs {
	return audit.Refs{
		Company: "Acme Travel",
		Agency:  "Travault",
		Owner:   "Jane Smith",
		Subject: "Printer trouble",
	}
}

func TestChangesRendersChoiceLabels(t *testing.T) {
	oldTicket := sampleTicket()
	newTicket := oldTicket.Clone()
	newTicket.Priority = domain.TicketPriorityHigh

	refs := sampleRefs()
	lines := audit.Changes(audit.NewSnapshot(oldTicket, refs), audit.NewSnapshot(newTicket, refs))

	gt.Array(t, lines).Length(1)
	gt.Value(t, lines[0]).Equal("Priority changed from 'Low' to 'High'")
}

func TestChangesRendersNoneForAbsentRefs(t *testing.T) {
	oldTicket := sampleTicket()
	newTicket := oldTicket.Clone()
	assignee := "u2"
	newTicket.AssignedToID = &assignee

	oldRefs := sampleRefs()
	newRefs := sampleRefs()
	newRefs.AssignedTo = "John Doe"

	lines := audit.Changes(audit.NewSnapshot(oldTicket, oldRefs), audit.NewSnapshot(newTicket, newRefs))

	gt.Array(t, lines).Length(1)
	gt.Value(t, lines[0]).Equal("Assigned to changed from 'None' to 'John Doe'")
}

func TestChangesEqualityUsesValuesNotDisplay(t *testing.T) {
	// Two different users can share a display name; the diff must still
	// fire because the underlying ids differ.
	oldTicket := sampleTicket()
	newTicket := oldTicket.Clone()
	newTicket.OwnerID = "u9"

	refs := sampleRefs()
	lines := audit.Changes(audit.NewSnapshot(oldTicket, refs), audit.NewSnapshot(newTicket, refs))

	gt.Array(t, lines).Length(1)
	gt.Value(t, lines[0]).Equal("Owner changed from 'Jane Smith' to 'Jane Smith'")
}

func TestChangesFollowFieldOrder(t *testing.T) {
	oldTicket := sampleTicket()
	newTicket := oldTicket.Clone()
	newTicket.Priority = domain.TicketPriorityMedium
	newTicket.Status = domain.TicketStatusClosed
	newTicket.Description = "resolved"

	refs := sampleRefs()
	lines := audit.Changes(audit.NewSnapshot(oldTicket, refs), audit.NewSnapshot(newTicket, refs))

	gt.Array(t, lines).Length(3)
	gt.Value(t, lines[0]).Equal("Priority changed from 'Low' to 'Medium'")
	gt.Value(t, lines[1]).Equal("Description changed from 'printer on fire' to 'resolved'")
	gt.Value(t, lines[2]).Equal("Status changed from 'Open' to 'Closed'")
}

func TestChangesIsIdempotent(t *testing.T) {
	oldTicket := sampleTicket()
	newTicket := oldTicket.Clone()
	newTicket.Status = domain.TicketStatusInProgress

	refs := sampleRefs()
	oldSnap := audit.NewSnapshot(oldTicket, refs)
	newSnap := audit.NewSnapshot(newTicket, refs)

	first := audit.Changes(oldSnap, newSnap)
	second := audit.Changes(oldSnap, newSnap)

	gt.Value(t, first).Equal(second)
}

func TestChangesNoDiffForIdenticalSnapshots(t *testing.T) {
	ticket := sampleTicket()
	refs := sampleRefs()

	lines := audit.Changes(audit.NewSnapshot(ticket, refs), audit.NewSnapshot(ticket, refs))
	gt.Array(t, lines).Length(0)
}

func TestSummaryJoinsLines(t *testing.T) {
	summary := audit.Summary([]string{"a", "b"})
	gt.Value(t, summary).Equal("a\nb")
}

func TestHumanizeField(t *testing.T) {
	gt.Value(t, audit.HumanizeField("assigned_to")).Equal("Assigned to")
	gt.Value(t, audit.HumanizeField("category_type")).Equal("Category type")
	gt.Value(t, audit.HumanizeField("status")).Equal("Status")
	gt.Value(t, audit.HumanizeField("")).Equal("")
}
