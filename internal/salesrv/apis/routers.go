package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/auth"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

var resourceHandlers = []httpx.ResponseHandlerParam{
	// Agencies
	{Method: http.MethodPost, Path: "/agencies", Handler: createAgency},
	{Method: http.MethodGet, Path: "/agencies", Handler: listAgencies},
	{Method: http.MethodGet, Path: "/agencies/{agencyID}", Handler: getAgency},
	{Method: http.MethodPut, Path: "/agencies/{agencyID}", Handler: updateAgency},
	{Method: http.MethodDelete, Path: "/agencies/{agencyID}", Handler: deleteAgency},

	// Advertisers
	{Method: http.MethodPost, Path: "/advertisers", Handler: createAdvertiser},
	{Method: http.MethodGet, Path: "/advertisers", Handler: listAdvertisers},
	{Method: http.MethodGet, Path: "/advertisers/{advertiserID}", Handler: getAdvertiser},
	{Method: http.MethodPut, Path: "/advertisers/{advertiserID}", Handler: updateAdvertiser},
	{Method: http.MethodDelete, Path: "/advertisers/{advertiserID}", Handler: deleteAdvertiser},

	// Shows and episodes
	{Method: http.MethodPost, Path: "/shows", Handler: createShow},
	{Method: http.MethodGet, Path: "/shows", Handler: listShows},
	{Method: http.MethodGet, Path: "/shows/{showID}", Handler: getShow},
	{Method: http.MethodPut, Path: "/shows/{showID}", Handler: updateShow},
	{Method: http.MethodDelete, Path: "/shows/{showID}", Handler: deleteShow},
	{Method: http.MethodGet, Path: "/shows/{showID}/episodes", Handler: listShowEpisodes},
	{Method: http.MethodPost, Path: "/episodes", Handler: createEpisode},
	{Method: http.MethodGet, Path: "/episodes/{episodeID}", Handler: getEpisode},
	{Method: http.MethodPut, Path: "/episodes/{episodeID}", Handler: updateEpisode},
	{Method: http.MethodDelete, Path: "/episodes/{episodeID}", Handler: deleteEpisode},

	// Campaigns
	{Method: http.MethodPost, Path: "/campaigns", Handler: createCampaign},
	{Method: http.MethodGet, Path: "/campaigns", Handler: listCampaigns},
	{Method: http.MethodGet, Path: "/campaigns/{campaignID}", Handler: getCampaign},
	{Method: http.MethodPut, Path: "/campaigns/{campaignID}", Handler: updateCampaign},
	{Method: http.MethodPut, Path: "/campaigns/{campaignID}/status", Handler: updateCampaignStatus},
	{Method: http.MethodDelete, Path: "/campaigns/{campaignID}", Handler: deleteCampaign},
	{Method: http.MethodGet, Path: "/campaigns/{campaignID}/summary", Handler: getCampaignSummary},
	{Method: http.MethodGet, Path: "/campaigns/{campaignID}/slots", Handler: listCampaignSlots},
	{Method: http.MethodGet, Path: "/campaigns/{campaignID}/assets", Handler: listCampaignAssets},
	{Method: http.MethodGet, Path: "/campaigns/{campaignID}/kpi", Handler: getCampaignKPI},
	{Method: http.MethodPut, Path: "/campaigns/{campaignID}/kpi/actuals", Handler: updateKPIActuals},
	{Method: http.MethodGet, Path: "/campaigns/{campaignID}/kpi/report", Handler: getKPIReport},

	// Schedule slots
	{Method: http.MethodPost, Path: "/slots", Handler: createSlot},
	{Method: http.MethodGet, Path: "/slots/{slotID}", Handler: getSlot},
	{Method: http.MethodPut, Path: "/slots/{slotID}", Handler: updateSlot},
	{Method: http.MethodPut, Path: "/slots/{slotID}/aired", Handler: markSlotAired},
	{Method: http.MethodDelete, Path: "/slots/{slotID}", Handler: deleteSlot},

	// Budgets
	{Method: http.MethodPut, Path: "/budgets", Handler: upsertBudgetEntry},
	{Method: http.MethodPut, Path: "/budgets/bulk", Handler: bulkUpsertBudgetEntries},
	{Method: http.MethodGet, Path: "/budgets", Handler: listBudgetEntries},
	{Method: http.MethodDelete, Path: "/budgets/{entryID}", Handler: deleteBudgetEntry},
	{Method: http.MethodGet, Path: "/budgets/rollup", Handler: getBudgetRollup},

	// Invoices and pre-bills
	{Method: http.MethodPost, Path: "/invoices", Handler: createInvoice},
	{Method: http.MethodGet, Path: "/invoices", Handler: listInvoices},
	{Method: http.MethodPost, Path: "/invoices/overdue/sweep", Handler: sweepOverdueInvoices},
	{Method: http.MethodGet, Path: "/invoices/{invoiceID}", Handler: getInvoice},
	{Method: http.MethodPut, Path: "/invoices/{invoiceID}/status", Handler: updateInvoiceStatus},
	{Method: http.MethodGet, Path: "/invoices/{invoiceID}/pdf", Handler: getInvoicePDF},
	{Method: http.MethodPost, Path: "/prebills", Handler: createPreBill},

	// Proposals
	{Method: http.MethodPost, Path: "/proposals", Handler: createProposal},
	{Method: http.MethodGet, Path: "/proposals", Handler: listProposals},
	{Method: http.MethodGet, Path: "/proposals/{proposalID}", Handler: getProposal},
	{Method: http.MethodPut, Path: "/proposals/{proposalID}", Handler: updateProposal},
	{Method: http.MethodGet, Path: "/proposals/{proposalID}/versions", Handler: listProposalVersions},
	{Method: http.MethodGet, Path: "/proposals/{proposalID}/versions/{versionNum}", Handler: getProposalVersion},
	{Method: http.MethodPost, Path: "/proposals/{proposalID}/versions/{versionNum}/restore", Handler: restoreProposalVersion},

	// Shipments
	{Method: http.MethodPost, Path: "/shipments", Handler: createShipment},
	{Method: http.MethodGet, Path: "/shipments", Handler: listShipments},
	{Method: http.MethodGet, Path: "/shipments/{shipmentID}", Handler: getShipment},
	{Method: http.MethodPut, Path: "/shipments/{shipmentID}", Handler: updateShipment},
	{Method: http.MethodPut, Path: "/shipments/{shipmentID}/status", Handler: updateShipmentStatus},
	{Method: http.MethodDelete, Path: "/shipments/{shipmentID}", Handler: deleteShipment},

	// KPIs
	{Method: http.MethodPut, Path: "/kpis", Handler: upsertKPI},

	// Ad approvals
	{Method: http.MethodPost, Path: "/approvals", Handler: submitApproval},
	{Method: http.MethodGet, Path: "/approvals", Handler: listApprovals},
	{Method: http.MethodGet, Path: "/approvals/{approvalID}", Handler: getApproval},
	{Method: http.MethodPut, Path: "/approvals/{approvalID}/status", Handler: transitionApproval},
	{Method: http.MethodGet, Path: "/approvals/{approvalID}/events", Handler: listApprovalEvents},

	// Integrations
	{Method: http.MethodGet, Path: "/integrations/providers", Handler: listIntegrationProviders},
	{Method: http.MethodGet, Path: "/integrations", Handler: listIntegrations},
	{Method: http.MethodPut, Path: "/integrations", Handler: configureIntegration},
	{Method: http.MethodGet, Path: "/integrations/{provider}", Handler: getIntegration},
	{Method: http.MethodPost, Path: "/integrations/{provider}/sync", Handler: runIntegrationSync},

	// Creative assets
	{Method: http.MethodPost, Path: "/assets", Handler: registerAsset},
	{Method: http.MethodPut, Path: "/assets/{assetID}/uploaded", Handler: confirmAssetUpload},
	{Method: http.MethodGet, Path: "/assets/{assetID}/download", Handler: getAssetDownloadURL},
	{Method: http.MethodDelete, Path: "/assets/{assetID}", Handler: archiveAsset},
}

var adminHandlers = []httpx.ResponseHandlerParam{
	{Method: http.MethodPost, Path: "/orgs", Handler: createOrganization},
	{Method: http.MethodGet, Path: "/orgs", Handler: listOrganizations},
	{Method: http.MethodGet, Path: "/orgs/{orgID}", Handler: getOrganization},
	{Method: http.MethodPut, Path: "/orgs/{orgID}/status", Handler: updateOrganizationStatus},
	{Method: http.MethodDelete, Path: "/orgs/{orgID}", Handler: deleteOrganization},

	{Method: http.MethodPost, Path: "/users", Handler: createUser},
	{Method: http.MethodGet, Path: "/users", Handler: listUsers},
	{Method: http.MethodGet, Path: "/users/{userID}", Handler: getUser},
	{Method: http.MethodPut, Path: "/users/{userID}", Handler: updateUser},
	{Method: http.MethodDelete, Path: "/users/{userID}", Handler: deleteUser},
}

// Router assembles the authenticated resource tree. Session validation runs
// in the parent router.
func Router() chi.Router {
	router := chi.NewRouter()
	for _, handler := range resourceHandlers {
		router.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	router.Group(func(gr chi.Router) {
		gr.Use(auth.RequireRole(salescommon.RoleAdmin))
		for _, handler := range adminHandlers {
			gr.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
		}
	})
	return router
}
