// Package db exposes the persistence interfaces for the sales service and
// manages per-request scoped connections. MetadataManager covers the public
// schema (organizations, users, signing keys); SalesManager covers the
// org-schema records. The interfaces are split so each can be wrapped
// independently.
package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dbmanager"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/postgresql"
)

type MetadataManager interface {
	// Organizations
	CreateOrganization(ctx context.Context, org *models.Organization) apperrors.Error
	GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, apperrors.Error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, apperrors.Error)
	ListOrganizations(ctx context.Context) ([]*models.Organization, apperrors.Error)
	UpdateOrganizationStatus(ctx context.Context, orgID uuid.UUID, status string) apperrors.Error
	DeleteOrganization(ctx context.Context, orgID uuid.UUID) apperrors.Error

	// Users
	CreateUser(ctx context.Context, user *models.User) apperrors.Error
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, apperrors.Error)
	GetUserByEmail(ctx context.Context, orgID uuid.UUID, email string) (*models.User, apperrors.Error)
	ListUsers(ctx context.Context, orgID uuid.UUID) ([]*models.User, apperrors.Error)
	UpdateUser(ctx context.Context, user *models.User) apperrors.Error
	DeleteUser(ctx context.Context, userID uuid.UUID) apperrors.Error

	// SigningKeys
	CreateSigningKey(ctx context.Context, key *models.SigningKey) apperrors.Error
	GetActiveSigningKey(ctx context.Context) (*models.SigningKey, apperrors.Error)
	UpdateSigningKeyActive(ctx context.Context, keyID uuid.UUID, isActive bool) apperrors.Error
}

type SalesManager interface {
	// Agencies
	CreateAgency(ctx context.Context, agency *models.Agency) apperrors.Error
	GetAgency(ctx context.Context, agencyID uuid.UUID) (*models.Agency, apperrors.Error)
	UpdateAgency(ctx context.Context, agency *models.Agency) apperrors.Error
	DeleteAgency(ctx context.Context, agencyID uuid.UUID) apperrors.Error
	ListAgencies(ctx context.Context) ([]*models.Agency, apperrors.Error)

	// Advertisers
	CreateAdvertiser(ctx context.Context, adv *models.Advertiser) apperrors.Error
	GetAdvertiser(ctx context.Context, advertiserID uuid.UUID) (*models.Advertiser, apperrors.Error)
	UpdateAdvertiser(ctx context.Context, adv *models.Advertiser) apperrors.Error
	DeleteAdvertiser(ctx context.Context, advertiserID uuid.UUID) apperrors.Error
	ListAdvertisers(ctx context.Context) ([]*models.Advertiser, apperrors.Error)
	ListAdvertiserLinks(ctx context.Context) ([]*models.AdvertiserLink, apperrors.Error)

	// Shows and episodes
	CreateShow(ctx context.Context, show *models.Show) apperrors.Error
	GetShow(ctx context.Context, showID uuid.UUID) (*models.Show, apperrors.Error)
	UpdateShow(ctx context.Context, show *models.Show) apperrors.Error
	DeleteShow(ctx context.Context, showID uuid.UUID) apperrors.Error
	ListShows(ctx context.Context) ([]*models.Show, apperrors.Error)
	CreateEpisode(ctx context.Context, ep *models.Episode) apperrors.Error
	GetEpisode(ctx context.Context, episodeID uuid.UUID) (*models.Episode, apperrors.Error)
	UpdateEpisode(ctx context.Context, ep *models.Episode) apperrors.Error
	DeleteEpisode(ctx context.Context, episodeID uuid.UUID) apperrors.Error
	ListEpisodesByShow(ctx context.Context, showID uuid.UUID) ([]*models.Episode, apperrors.Error)
	UpdateEpisodeDownloads(ctx context.Context, episodeID uuid.UUID, downloads int64) apperrors.Error

	// Campaigns
	CreateCampaign(ctx context.Context, c *models.Campaign) apperrors.Error
	GetCampaign(ctx context.Context, campaignID uuid.UUID) (*models.Campaign, apperrors.Error)
	UpdateCampaign(ctx context.Context, c *models.Campaign) apperrors.Error
	DeleteCampaign(ctx context.Context, campaignID uuid.UUID) apperrors.Error
	ListCampaigns(ctx context.Context, status string, advertiserID uuid.UUID) ([]*models.Campaign, apperrors.Error)
	GetCampaignSpend(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, apperrors.Error)

	// Schedule slots
	CreateScheduleSlot(ctx context.Context, slot *models.ScheduleSlot) apperrors.Error
	GetScheduleSlot(ctx context.Context, slotID uuid.UUID) (*models.ScheduleSlot, apperrors.Error)
	UpdateScheduleSlot(ctx context.Context, slot *models.ScheduleSlot) apperrors.Error
	DeleteScheduleSlot(ctx context.Context, slotID uuid.UUID) apperrors.Error
	ListSlotsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.ScheduleSlot, apperrors.Error)
	ListUnbilledSlots(ctx context.Context, campaignID uuid.UUID) ([]*models.ScheduleSlot, apperrors.Error)

	// Budgets
	UpsertBudgetEntry(ctx context.Context, entry *models.BudgetEntry) apperrors.Error
	GetBudgetEntry(ctx context.Context, entryID uuid.UUID) (*models.BudgetEntry, apperrors.Error)
	DeleteBudgetEntry(ctx context.Context, entryID uuid.UUID) apperrors.Error
	ListBudgetEntries(ctx context.Context, year, month int) ([]*models.BudgetEntry, apperrors.Error)

	// Invoices
	CreateInvoice(ctx context.Context, inv *models.Invoice, lines []*models.InvoiceLine) apperrors.Error
	CreatePreBill(ctx context.Context, inv *models.Invoice, lines []*models.InvoiceLine, slotIDs []uuid.UUID) apperrors.Error
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error)
	GetInvoiceLines(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, apperrors.Error)
	ListInvoices(ctx context.Context, status string, advertiserID uuid.UUID, issuedFrom, issuedTo time.Time) ([]*models.Invoice, apperrors.Error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string, at time.Time) apperrors.Error
	ReleasePreBillSlots(ctx context.Context, invoiceID uuid.UUID) apperrors.Error

	// Proposals
	CreateProposal(ctx context.Context, p *models.Proposal, changeNote string) apperrors.Error
	GetProposal(ctx context.Context, proposalID uuid.UUID) (*models.Proposal, apperrors.Error)
	UpdateProposalWithVersion(ctx context.Context, p *models.Proposal, changeNote string, author uuid.UUID) apperrors.Error
	ListProposals(ctx context.Context, status string) ([]*models.Proposal, apperrors.Error)
	ListProposalVersions(ctx context.Context, proposalID uuid.UUID) ([]*models.ProposalVersion, apperrors.Error)
	GetProposalVersion(ctx context.Context, proposalID uuid.UUID, versionNum int) (*models.ProposalVersion, apperrors.Error)

	// Shipments
	CreateShipment(ctx context.Context, s *models.Shipment) apperrors.Error
	GetShipment(ctx context.Context, shipmentID uuid.UUID) (*models.Shipment, apperrors.Error)
	UpdateShipment(ctx context.Context, s *models.Shipment) apperrors.Error
	DeleteShipment(ctx context.Context, shipmentID uuid.UUID) apperrors.Error
	ListShipments(ctx context.Context, campaignID uuid.UUID) ([]*models.Shipment, apperrors.Error)

	// KPIs
	UpsertKPI(ctx context.Context, kpi *models.KPI) apperrors.Error
	GetKPIByCampaign(ctx context.Context, campaignID uuid.UUID) (*models.KPI, apperrors.Error)

	// Approvals
	CreateApproval(ctx context.Context, a *models.Approval) apperrors.Error
	GetApproval(ctx context.Context, approvalID uuid.UUID) (*models.Approval, apperrors.Error)
	ListApprovals(ctx context.Context, status string) ([]*models.Approval, apperrors.Error)
	UpdateApprovalStatus(ctx context.Context, approvalID uuid.UUID, event *models.ApprovalEvent) apperrors.Error
	ListApprovalEvents(ctx context.Context, approvalID uuid.UUID) ([]*models.ApprovalEvent, apperrors.Error)

	// Integrations
	UpsertIntegration(ctx context.Context, in *models.Integration) apperrors.Error
	GetIntegrationByProvider(ctx context.Context, provider string) (*models.Integration, apperrors.Error)
	ListIntegrations(ctx context.Context) ([]*models.Integration, apperrors.Error)
	UpdateIntegrationSyncState(ctx context.Context, integrationID uuid.UUID, status, syncErr string, at time.Time) apperrors.Error

	// Creative assets
	CreateAsset(ctx context.Context, a *models.CreativeAsset) apperrors.Error
	GetAsset(ctx context.Context, assetID uuid.UUID) (*models.CreativeAsset, apperrors.Error)
	UpdateAssetStatus(ctx context.Context, assetID uuid.UUID, status string) apperrors.Error
	ListAssetsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.CreativeAsset, apperrors.Error)
}

type ConnectionManager interface {
	AddScopes(ctx context.Context, scopes map[string]string) error
	DropScopes(ctx context.Context, scopes []string) error
	AddScope(ctx context.Context, scope, value string) error
	DropScope(ctx context.Context, scope string) error
	DropAllScopes(ctx context.Context) error

	// Close the connection to the database.
	Close(ctx context.Context)
}

type DB_ interface {
	MetadataManager
	SalesManager
	ConnectionManager
}

const (
	// ScopeSearchPath pins the connection to the org's schema.
	ScopeSearchPath string = "search_path"
	// ScopeOrgId exposes the org to SQL defaults and audit triggers.
	ScopeOrgId string = "app.curr_org_id"
)

var configuredScopes = []string{
	ScopeSearchPath,
	ScopeOrgId,
}

var (
	pool     dbmanager.ScopedDb
	poolOnce sync.Once
)

// Init opens the connection pool. Called once from main; subsequent calls
// are no-ops.
func Init(ctx context.Context) error {
	var err error
	poolOnce.Do(func() {
		pg, e := dbmanager.NewPostgresqlDb(configuredScopes)
		if e != nil {
			err = e
			return
		}
		pool = pg
	})
	return err
}

func Conn(ctx context.Context) dbmanager.ScopedConn {
	if pool == nil {
		if err := Init(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("unable to init db pool")
			return nil
		}
	}
	conn, err := pool.Conn(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
		return nil
	}
	return conn
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "SalesDb"

// ConnCtx attaches a scoped connection to the context for the duration of a
// request.
func ConnCtx(ctx context.Context) context.Context {
	conn := Conn(ctx)
	return context.WithValue(ctx, ctxDbKey, conn)
}

type salesDb struct {
	MetadataManager
	SalesManager
	ConnectionManager
}

func DB(ctx context.Context) DB_ {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.ScopedConn); ok && conn != nil {
		mm, sm, cm := postgresql.NewSalesDb(conn)
		return &salesDb{
			MetadataManager:   mm,
			SalesManager:      sm,
			ConnectionManager: cm,
		}
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
