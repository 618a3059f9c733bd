package handler

import (
	"time"

	appmodels "dochub/internal/applications/models"
	authmodels "dochub/internal/auth/models"
	"dochub/internal/catalog"
	"dochub/internal/dashboard/service"
	docmodels "dochub/internal/documents/models"
	"dochub/internal/i18n"
	"dochub/pkg/platform/audit"
)

const dateLayout = "2006-01-02"

type ApplicationResponse struct {
	ID                  string    `json:"id"`
	ApplicationNumber   string    `json:"applicationNumber"`
	ServiceKind         string    `json:"serviceKind"`
	ServiceName         string    `json:"serviceName"`
	Title               string    `json:"title"`
	Status              string    `json:"status"`
	SubmittedDate       string    `json:"submittedDate"`
	EstimatedCompletion string    `json:"estimatedCompletion"`
	RequiredDocuments   []string  `json:"requiredDocuments"`
	Notes               string    `json:"notes,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func toApplication(lang i18n.Language, app *appmodels.Application) ApplicationResponse {
	name := string(app.Service)
	if svc, ok := catalog.Lookup(app.Service); ok {
		name = svc.Name.In(lang)
	}
	docs := app.RequiredDocuments
	if docs == nil {
		docs = []string{}
	}
	return ApplicationResponse{
		ID:                  app.ID.String(),
		ApplicationNumber:   app.Number,
		ServiceKind:         string(app.Service),
		ServiceName:         name,
		Title:               app.Title,
		Status:              string(app.Status),
		SubmittedDate:       app.SubmittedAt.Format(dateLayout),
		EstimatedCompletion: app.EstimatedCompletion.Format(dateLayout),
		RequiredDocuments:   docs,
		Notes:               app.Notes,
		UpdatedAt:           app.UpdatedAt,
	}
}

func toApplications(lang i18n.Language, apps []*appmodels.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplication(lang, app))
	}
	return out
}

type DocumentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Size          string `json:"size"`
	SizeBytes     int64  `json:"sizeBytes"`
	Date          string `json:"date"`
	ApplicationID string `json:"applicationId,omitempty"`
}

func toDocument(doc *docmodels.Document) DocumentResponse {
	out := DocumentResponse{
		ID:        doc.ID.String(),
		Name:      doc.Name,
		Type:      doc.Type,
		Size:      doc.Size(),
		SizeBytes: doc.SizeBytes,
		Date:      doc.UploadedAt.Format(dateLayout),
	}
	if !doc.ApplicationID.IsNil() {
		out.ApplicationID = doc.ApplicationID.String()
	}
	return out
}

func toDocuments(docs []*docmodels.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocument(doc))
	}
	return out
}

type CitizenStatsResponse struct {
	Total      int `json:"total"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Documents  int `json:"documents"`
}

type CitizenDashboardResponse struct {
	Stats           CitizenStatsResponse  `json:"stats"`
	Services        []catalog.View        `json:"services"`
	SelectedService string                `json:"selectedService,omitempty"`
	Applications    []ApplicationResponse `json:"applications"`
	Documents       []DocumentResponse    `json:"documents"`
	OpenApplication *ApplicationResponse  `json:"openApplication,omitempty"`
}

func toCitizenDashboard(lang i18n.Language, d *service.CitizenDashboard) CitizenDashboardResponse {
	out := CitizenDashboardResponse{
		Stats: CitizenStatsResponse{
			Total:      d.Stats.Total,
			InProgress: d.Stats.InProgress,
			Completed:  d.Stats.Completed,
			Documents:  d.Stats.Documents,
		},
		Services:        d.Services,
		SelectedService: d.SelectedService,
		Applications:    toApplications(lang, d.Applications),
		Documents:       toDocuments(d.Documents),
	}
	if d.OpenApplication != nil {
		open := toApplication(lang, d.OpenApplication)
		out.OpenApplication = &open
	}
	return out
}

type SelectionResponse struct {
	SelectedService string `json:"selectedService"`
}

type RenameResponse struct {
	Application ApplicationResponse `json:"application"`
	Changed     bool                `json:"changed"`
}

type UploadResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type OfficerStatsResponse struct {
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type OfficerDashboardResponse struct {
	Stats        OfficerStatsResponse  `json:"stats"`
	Tab          string                `json:"tab"`
	Applications []ApplicationResponse `json:"applications"`
}

func toOfficerDashboard(lang i18n.Language, d *service.OfficerDashboard) OfficerDashboardResponse {
	return OfficerDashboardResponse{
		Stats: OfficerStatsResponse{
			Pending:  d.Stats.Pending,
			Reviewed: d.Stats.Reviewed,
			Approved: d.Stats.Approved,
			Rejected: d.Stats.Rejected,
		},
		Tab:          string(d.Tab),
		Applications: toApplications(lang, d.Applications),
	}
}

type ActivityResponse struct {
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func toActivity(events []audit.Event) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(events))
	for _, e := range events {
		category := e.Category
		if category == "" {
			category = audit.AuditEvent(e.Action).Category()
		}
		a := ActivityResponse{
			Action:    e.Action,
			Category:  string(category),
			Subject:   e.Subject,
			ActorID:   e.ActorID,
			Timestamp: e.Timestamp,
		}
		if !e.UserID.IsNil() {
			a.UserID = e.UserID.String()
		}
		out = append(out, a)
	}
	return out
}

type AdminOverviewResponse struct {
	TotalCitizens     int                `json:"totalCitizens"`
	ActiveOfficers    int                `json:"activeOfficers"`
	TotalApplications int                `json:"totalApplications"`
	SystemHealth      string             `json:"systemHealth"`
	Dependencies      map[string]string  `json:"dependencies"`
	RecentActivity    []ActivityResponse `json:"recentActivity"`
}

func toAdminOverview(o *service.AdminOverview) AdminOverviewResponse {
	return AdminOverviewResponse{
		TotalCitizens:     o.TotalCitizens,
		ActiveOfficers:    o.ActiveOfficers,
		TotalApplications: o.TotalApplications,
		SystemHealth:      o.SystemHealth,
		Dependencies:      o.Dependencies,
		RecentActivity:    toActivity(o.RecentActivity),
	}
}

type UserResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	NationalID string    `json:"nationalId,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUsers(users []*authmodels.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:         u.ID.String(),
			FullName:   u.DisplayName(),
			Email:      u.Email,
			Phone:      u.Phone,
			NationalID: u.NationalID,
			Role:       string(u.Role),
			Status:     string(u.Status),
			CreatedAt:  u.CreatedAt,
		})
	}
	return out
}

type BackupResponse struct {
	Reference   string    `json:"reference"`
	RequestedAt time.Time `json:"requestedAt"`
	Message     string    `json:"message"`
}
