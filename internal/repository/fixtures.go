package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/claritybiz/irp-platform/internal/model"
)

// Fixture ids are fixed so seeded stores are reproducible across restarts
// of a demo environment.
var (
	FixtureSeekerID     = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	FixtureProviderID   = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	FixtureTeamMemberID = uuid.MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
	FixtureEntityID     = uuid.MustParse("6ba7b813-9dad-11d1-80b4-00c04fd430c8")
)

type Stores struct {
	Requests      *RequestRepository
	Bids          *BidRepository
	Chat          *ChatRepository
	Professionals *ProfessionalRepository
	Workspace     *WorkspaceRepository
	Profiles      *ProfileRepository
	Payments      *PaymentRepository
}

func NewStores() *Stores {
	seq := NewSequence()
	return &Stores{
		Requests:      NewRequestRepository(seq),
		Bids:          NewBidRepository(seq),
		Chat:          NewChatRepository(),
		Professionals: NewProfessionalRepository(),
		Workspace:     NewWorkspaceRepository(),
		Profiles:      NewProfileRepository(seq),
		Payments:      NewPaymentRepository(seq),
	}
}

// Seed loads the demo fixture set: five rated professionals, a service
// request per major status, a three-party chat thread, one workspace
// entity with module windows, and a payment history.
func (s *Stores) Seed(ctx context.Context) error {
	now := time.Now().UTC()

	professionals := []model.Professional{
		{Name: "Asha Mehta", Email: "asha.mehta@example.in", Rating: 4.9,
			Specialization: []string{"CIRP", "Liquidation"}, Location: "Mumbai", CompletedJobs: 42},
		{Name: "Rohit Sharma", Email: "rohit.sharma@example.in", Rating: 4.8,
			Specialization: []string{"Claims Verification"}, Location: "Delhi", CompletedJobs: 31},
		{Name: "Priya Nair", Email: "priya.nair@example.in", Rating: 4.7,
			Specialization: []string{"Valuation", "CIRP"}, Location: "Kochi", CompletedJobs: 27},
		{Name: "Vikram Rao", Email: "vikram.rao@example.in", Rating: 4.6,
			Specialization: []string{"Litigation Support"}, Location: "Hyderabad", CompletedJobs: 19},
		{Name: "Sunita Joshi", Email: "sunita.joshi@example.in", Rating: 4.5,
			Specialization: []string{"Compliance"}, Location: "Pune", CompletedJobs: 12},
	}
	for _, p := range professionals {
		p.MemberSince = now.AddDate(-2, 0, 0)
		if _, err := s.Professionals.Create(ctx, p); err != nil {
			return err
		}
	}

	requests := []struct {
		title    string
		category string
		status   model.ServiceRequestStatus
		min, max float64
	}{
		{"Publication of Form A in two newspapers", "publication", model.RequestStatusOpen, 20000, 35000},
		{"Valuation of plant and machinery", "valuation", model.RequestStatusOpen, 150000, 250000},
		{"Claims verification support for CIRP", "claims", model.RequestStatusBidReceived, 80000, 120000},
		{"Avoidance transaction review", "forensic", model.RequestStatusUnderNegotiation, 200000, 350000},
		{"Statutory compliance calendar setup", "compliance", model.RequestStatusInProgress, 40000, 60000},
		{"Drafting reply to NCLT application", "litigation", model.RequestStatusCompleted, 90000, 110000},
		{"E-voting facilitation for CoC meeting", "meetings", model.RequestStatusClosed, 15000, 25000},
	}
	for _, fixture := range requests {
		req := model.ServiceRequest{
			Title:           fixture.title,
			Description:     "Seeded demo request: " + fixture.title,
			ServiceCategory: []string{fixture.category},
			ServiceTypes:    []string{fixture.category},
			ScopeOfWork:     "As per engagement letter.",
			BudgetRange:     model.BudgetRange{Min: fixture.min, Max: fixture.max},
			Status:          fixture.status,
			CreatedBy:       FixtureSeekerID,
			WorkRequiredBy:  now.AddDate(0, 1, 0),
			Deadline:        now.AddDate(0, 0, 14),
		}
		if _, err := s.Requests.Create(ctx, req); err != nil {
			return err
		}
	}

	requestPage, err := s.Requests.List(ctx, RequestFilter{}, PageRequest{Limit: MaxLimit})
	if err != nil {
		return err
	}
	var bidRequestID uuid.UUID
	for _, req := range requestPage.Data {
		if req.Status == model.RequestStatusBidReceived {
			bidRequestID = req.ID
			break
		}
	}

	bid := model.Bid{
		ServiceRequestID: bidRequestID,
		ProviderID:       FixtureProviderID,
		Financials: model.BidFinancials{
			ProfessionalFee:  90000,
			PlatformFee:      4500,
			GST:              17010,
			Reimbursements:   2500,
			TotalBidAmount:   114010,
			PaymentStructure: model.PaymentLumpSum,
		},
		DeliveryDate: now.AddDate(0, 2, 0),
		Status:       model.BidStatusSubmitted,
	}
	if _, err := s.Bids.Create(ctx, bid); err != nil {
		return err
	}

	thread := model.ChatThread{
		ServiceRequestID: &bidRequestID,
		Subject:          "Claims verification support for CIRP",
		Participants: []model.ChatParticipant{
			{UserID: FixtureSeekerID, Name: "Seeker Admin", Role: model.RoleSeeker},
			{UserID: FixtureProviderID, Name: "Asha Mehta", Role: model.RoleProvider},
			{UserID: FixtureTeamMemberID, Name: "Case Paralegal", Role: model.RoleTeamMember},
		},
	}
	if _, err := s.Chat.Create(ctx, thread); err != nil {
		return err
	}

	entity := model.WorkspaceEntity{
		Name:    "Sunrise Textiles Private Limited",
		CIN:     "U17110MH2008PTC184427",
		OwnerID: FixtureSeekerID,
		Modules: []model.WorkspaceModule{
			{ID: uuid.New(), Code: "claims", Name: "Claims Management",
				Status: model.ModuleStatusActive, StartAt: now.AddDate(0, -3, 0), EndAt: now.AddDate(0, 9, 0)},
			{ID: uuid.New(), Code: "meetings", Name: "Meeting Management",
				Status: model.ModuleStatusTrial, StartAt: now.AddDate(0, 0, -10), EndAt: now.AddDate(0, 0, 20), TrialDays: 30},
			{ID: uuid.New(), Code: "litigation", Name: "Litigation Tracker",
				Status: model.ModuleStatusPendingActivation, StartAt: now.AddDate(0, 1, 0), EndAt: now.AddDate(1, 1, 0)},
		},
		TeamMembers: []model.EntityTeamMember{
			{UserID: FixtureTeamMemberID, Name: "Case Paralegal", Email: "paralegal@example.in",
				Permissions: map[string][]model.ModulePermission{
					"claims":   {model.PermissionView, model.PermissionEdit},
					"meetings": {model.PermissionView},
				}},
		},
	}
	if _, err := s.Workspace.CreateEntity(ctx, entity); err != nil {
		return err
	}

	profile := model.UserProfile{
		UserID: FixtureTeamMemberID,
		Role:   model.RoleTeamMemberProfile,
		Fields: map[string]any{
			"name":          "Case Paralegal",
			"email":         "paralegal@example.in",
			"contactNumber": "+91-9820012345",
		},
	}
	if _, err := s.Profiles.Create(ctx, profile); err != nil {
		return err
	}

	payments := []model.PaymentRecord{
		{PayerID: FixtureSeekerID, Purpose: "Platform fee, SRN publication", Amount: 4500, GST: 810,
			Method: model.PaymentMethodNetBanking, Status: model.PaymentStatusSuccess, PaidAt: now.AddDate(0, -1, -3)},
		{PayerID: FixtureSeekerID, Purpose: "Work order advance, claims support", Amount: 57005, GST: 10261,
			Method: model.PaymentMethodUPI, Status: model.PaymentStatusSuccess, PaidAt: now.AddDate(0, 0, -12)},
		{PayerID: FixtureSeekerID, Purpose: "Meeting module subscription", Amount: 12000, GST: 2160,
			Method: model.PaymentMethodCard, Status: model.PaymentStatusPending, PaidAt: now.AddDate(0, 0, -1)},
	}
	for _, p := range payments {
		if _, err := s.Payments.Create(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
