package service_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestGetOrCreateSubjectIsIdempotentPerTenant(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, created, err := e.subjects.GetOrCreate(ctx, e.agent, "Lost luggage")
	gt.NoError(t, err).Required()
	gt.Bool(t, created).True()

	second, created, err := e.subjects.GetOrCreate(ctx, e.admin, "Lost luggage")
	gt.NoError(t, err).Required()
	gt.Bool(t, created).False()
	gt.Value(t, second.ID).Equal(first.ID)

	// Matching is case-sensitive; different casing is a new subject.
	third, created, err := e.subjects.GetOrCreate(ctx, e.agent, "lost luggage")
	gt.NoError(t, err).Required()
	gt.Bool(t, created).True()
	gt.Value(t, third.ID).NotEqual(first.ID)
}

func TestSubjectsAreScopedPerTenant(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ours, _, err := e.subjects.GetOrCreate(ctx, e.agent, "Visa question")
	gt.NoError(t, err).Required()

	theirs, created, err := e.subjects.GetOrCreate(ctx, e.otherAdmin, "Visa question")
	gt.NoError(t, err).Required()
	gt.Bool(t, created).True()
	gt.Value(t, theirs.ID).NotEqual(ours.ID)
}

func TestDeleteSubjectProtectedWhileReferenced(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ticket := e.createTicket(t, e.agent)

	err := e.subjects.Delete(ctx, e.admin, ticket.SubjectID)
	gt.Value(t, errCode(err)).Equal("referenced_entity_protected")

	// Once the referencing ticket is gone the subject can be removed.
	gt.NoError(t, e.tickets.DeleteTicket(ctx, e.admin, ticket.ID, ticket.ID)).Required()
	gt.NoError(t, e.subjects.Delete(ctx, e.admin, ticket.SubjectID)).Required()
}

func TestRenameSubjectAppliesToAllTickets(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ticket := e.createTicket(t, e.agent)

	renamed, err := e.subjects.Rename(ctx, e.admin, ticket.SubjectID, "Booking problem (legacy)")
	gt.NoError(t, err).Required()
	gt.Value(t, renamed.Subject).Equal("Booking problem (legacy)")

	subjects, err := e.subjects.List(ctx, e.agent)
	gt.NoError(t, err).Required()
	gt.Array(t, subjects).Length(1)
	gt.Value(t, subjects[0].Subject).Equal("Booking problem (legacy)")
	gt.Value(t, subjects[0].TicketCount).Equal(1)
}

func TestRenameSubjectRejectsEmptyText(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ticket := e.createTicket(t, e.agent)
	_, err := e.subjects.Rename(ctx, e.admin, ticket.SubjectID, "")
	gt.Value(t, errCode(err)).Equal("validation_error")
}
