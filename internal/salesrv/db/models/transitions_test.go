package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidCampaignTransition(t *testing.T) {
	assert.True(t, ValidCampaignTransition(CampaignStatusDraft, CampaignStatusPending))
	assert.True(t, ValidCampaignTransition(CampaignStatusDraft, CampaignStatusActive))
	assert.True(t, ValidCampaignTransition(CampaignStatusActive, CampaignStatusPaused))
	assert.True(t, ValidCampaignTransition(CampaignStatusPaused, CampaignStatusActive))
	assert.True(t, ValidCampaignTransition(CampaignStatusActive, CampaignStatusActive))

	// Terminal statuses stay terminal.
	assert.False(t, ValidCampaignTransition(CampaignStatusCompleted, CampaignStatusActive))
	assert.False(t, ValidCampaignTransition(CampaignStatusCancelled, CampaignStatusDraft))
	assert.False(t, ValidCampaignTransition(CampaignStatusPending, CampaignStatusPaused))
}

func TestValidInvoiceTransition(t *testing.T) {
	assert.True(t, ValidInvoiceTransition(InvoiceStatusDraft, InvoiceStatusSent))
	assert.True(t, ValidInvoiceTransition(InvoiceStatusSent, InvoiceStatusPaid))
	assert.True(t, ValidInvoiceTransition(InvoiceStatusSent, InvoiceStatusOverdue))
	assert.True(t, ValidInvoiceTransition(InvoiceStatusOverdue, InvoiceStatusPaid))
	assert.True(t, ValidInvoiceTransition(InvoiceStatusDraft, InvoiceStatusVoid))

	assert.False(t, ValidInvoiceTransition(InvoiceStatusPaid, InvoiceStatusSent))
	assert.False(t, ValidInvoiceTransition(InvoiceStatusVoid, InvoiceStatusDraft))
	assert.False(t, ValidInvoiceTransition(InvoiceStatusDraft, InvoiceStatusPaid))
}

func TestValidShipmentTransition(t *testing.T) {
	assert.True(t, ValidShipmentTransition(ShipmentStatusPending, ShipmentStatusShipped))
	assert.True(t, ValidShipmentTransition(ShipmentStatusShipped, ShipmentStatusDelivered))
	assert.True(t, ValidShipmentTransition(ShipmentStatusDelivered, ShipmentStatusReturned))

	assert.False(t, ValidShipmentTransition(ShipmentStatusPending, ShipmentStatusDelivered))
	assert.False(t, ValidShipmentTransition(ShipmentStatusReturned, ShipmentStatusPending))
}

func TestValidApprovalTransition(t *testing.T) {
	assert.True(t, ValidApprovalTransition(ApprovalStatusPending, ApprovalStatusApproved))
	assert.True(t, ValidApprovalTransition(ApprovalStatusPending, ApprovalStatusRejected))
	assert.True(t, ValidApprovalTransition(ApprovalStatusPending, ApprovalStatusRevision))
	assert.True(t, ValidApprovalTransition(ApprovalStatusRevision, ApprovalStatusPending))

	assert.False(t, ValidApprovalTransition(ApprovalStatusApproved, ApprovalStatusPending))
	assert.False(t, ValidApprovalTransition(ApprovalStatusRejected, ApprovalStatusPending))
	assert.False(t, ValidApprovalTransition(ApprovalStatusRevision, ApprovalStatusApproved))
}

func TestValidSlotTransition(t *testing.T) {
	assert.True(t, ValidSlotTransition(SlotStatusBooked, SlotStatusAired))
	assert.True(t, ValidSlotTransition(SlotStatusBooked, SlotStatusBilled))
	assert.True(t, ValidSlotTransition(SlotStatusAired, SlotStatusBilled))
	assert.True(t, ValidSlotTransition(SlotStatusBilled, SlotStatusReleased))
	assert.True(t, ValidSlotTransition(SlotStatusReleased, SlotStatusBilled))
	assert.True(t, ValidSlotTransition(SlotStatusReleased, SlotStatusAired))

	assert.False(t, ValidSlotTransition(SlotStatusBooked, SlotStatusReleased))
	assert.False(t, ValidSlotTransition(SlotStatusAired, SlotStatusBooked))
	assert.False(t, ValidSlotTransition(SlotStatusBilled, SlotStatusBooked))
}

func TestValidSlotType(t *testing.T) {
	for _, st := range []string{SlotTypePreroll, SlotTypeMidroll, SlotTypePostroll, SlotTypeHostRead} {
		assert.True(t, ValidSlotType(st), st)
	}
	assert.False(t, ValidSlotType("billboard"))
	assert.False(t, ValidSlotType(""))
}

func TestValidBudgetEntityType(t *testing.T) {
	for _, et := range []string{BudgetEntitySeller, BudgetEntityAgency, BudgetEntityAdvertiser} {
		assert.True(t, ValidBudgetEntityType(et), et)
	}
	assert.False(t, ValidBudgetEntityType("campaign"))
}

func TestKPIActualCPA(t *testing.T) {
	k := &KPI{ActualConversions: 0}
	assert.True(t, k.ActualCPA(decimal.NewFromInt(1000)).IsZero())

	k.ActualConversions = 40
	got := k.ActualCPA(decimal.NewFromInt(1000))
	assert.Equal(t, "25", got.String())

	k.ActualConversions = 3
	got = k.ActualCPA(decimal.NewFromInt(100))
	assert.Equal(t, "33.33", got.String())
}
