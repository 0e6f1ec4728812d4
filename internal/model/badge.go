package model

import "strings"

// StatusBadge is the single source of truth for how a status renders in
// any list or dashboard view. Clients stop reimplementing the label/color
// switch per page.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var requestBadges = map[ServiceRequestStatus]StatusBadge{
	RequestStatusDraft:            {Label: "Draft", Color: "gray"},
	RequestStatusOpen:             {Label: "Open", Color: "blue"},
	RequestStatusBidReceived:      {Label: "Bid Received", Color: "indigo"},
	RequestStatusUnderNegotiation: {Label: "Under Negotiation", Color: "amber"},
	RequestStatusBidAccepted:      {Label: "Bid Accepted", Color: "teal"},
	RequestStatusPaymentPending:   {Label: "Payment Pending", Color: "orange"},
	RequestStatusWorkOrderIssued:  {Label: "Work Order Issued", Color: "cyan"},
	RequestStatusInProgress:       {Label: "In Progress", Color: "violet"},
	RequestStatusCompleted:        {Label: "Completed", Color: "green"},
	RequestStatusClosed:           {Label: "Closed", Color: "slate"},
	RequestStatusExpired:          {Label: "Expired", Color: "red"},
	RequestStatusCancelled:        {Label: "Cancelled", Color: "red"},
	RequestStatusAwardedToAnother: {Label: "Awarded To Another", Color: "rose"},
	RequestStatusOnHold:           {Label: "On Hold", Color: "yellow"},
	RequestStatusDisputed:         {Label: "Disputed", Color: "red"},
}

var bidBadges = map[BidStatus]StatusBadge{
	BidStatusDraft:       {Label: "Draft", Color: "gray"},
	BidStatusSubmitted:   {Label: "Submitted", Color: "blue"},
	BidStatusUnderReview: {Label: "Under Review", Color: "amber"},
	BidStatusNegotiating: {Label: "Negotiating", Color: "orange"},
	BidStatusAccepted:    {Label: "Accepted", Color: "green"},
	BidStatusRejected:    {Label: "Rejected", Color: "red"},
	BidStatusWithdrawn:   {Label: "Withdrawn", Color: "slate"},
	BidStatusExpired:     {Label: "Expired", Color: "red"},
}

var moduleBadges = map[ModuleStatus]StatusBadge{
	ModuleStatusActive:            {Label: "Active", Color: "green"},
	ModuleStatusTrial:             {Label: "Trial", Color: "blue"},
	ModuleStatusExpired:           {Label: "Expired", Color: "red"},
	ModuleStatusPendingActivation: {Label: "Pending Activation", Color: "amber"},
}

func BadgeForRequestStatus(s ServiceRequestStatus) StatusBadge {
	if b, ok := requestBadges[s]; ok {
		return b
	}
	return StatusBadge{Label: TitleCaseStatus(string(s)), Color: "gray"}
}

func BadgeForBidStatus(s BidStatus) StatusBadge {
	if b, ok := bidBadges[s]; ok {
		return b
	}
	return StatusBadge{Label: TitleCaseStatus(string(s)), Color: "gray"}
}

func BadgeForModuleStatus(s ModuleStatus) StatusBadge {
	if b, ok := moduleBadges[s]; ok {
		return b
	}
	return StatusBadge{Label: TitleCaseStatus(string(s)), Color: "gray"}
}

// TitleCaseStatus is the fallback for enum values without a badge entry:
// "bid_received" becomes "Bid Received".
func TitleCaseStatus(raw string) string {
	parts := strings.Split(strings.ReplaceAll(raw, "_", " "), " ")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
