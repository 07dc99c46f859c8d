package domain_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/domain"
)

func TestValidateCategory(t *testing.T) {
	gt.Bool(t, domain.ValidateCategory(domain.CategoryTypeClient, "complaint")).True()
	gt.Bool(t, domain.ValidateCategory(domain.CategoryTypeAgency, "consultant_error")).True()

	// Each category belongs to exactly one category type.
	gt.Bool(t, domain.ValidateCategory(domain.CategoryTypeClient, "consultant_error")).False()
	gt.Bool(t, domain.ValidateCategory(domain.CategoryTypeAgency, "complaint")).False()

	gt.Bool(t, domain.ValidateCategory("unknown", "complaint")).False()
	gt.Bool(t, domain.ValidateCategory(domain.CategoryTypeClient, "")).False()
}

func TestLabelForFallsBackToRawValue(t *testing.T) {
	gt.Value(t, domain.LabelFor(domain.PriorityChoices, "high")).Equal("High")
	gt.Value(t, domain.LabelFor(domain.PriorityChoices, "urgent")).Equal("urgent")
}

func TestCategoryLabel(t *testing.T) {
	gt.Value(t, domain.CategoryLabel(domain.CategoryTypeAgency, "system_error")).Equal("System Error")
	gt.Value(t, domain.CategoryLabel("unknown", "whatever")).Equal("whatever")
}

func TestFullNameFallsBackToUsername(t *testing.T) {
	user := &domain.CustomUser{Username: "jsmith", FirstName: "Jane", LastName: "Smith"}
	gt.Value(t, user.FullName()).Equal("Jane Smith")

	user = &domain.CustomUser{Username: "jsmith"}
	gt.Value(t, user.FullName()).Equal("jsmith")
}

func TestCloneDetachesPointers(t *testing.T) {
	assignee := "u2"
	ticket := &domain.Ticket{ID: "t1", AssignedToID: &assignee}
	clone := ticket.Clone()

	other := "u3"
	clone.AssignedToID = &other
	gt.Value(t, *ticket.AssignedToID).Equal("u2")
}
