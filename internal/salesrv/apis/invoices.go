package apis

import (
	"net/http"
	"time"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func createInvoice(r *http.Request) (*httpx.Response, error) {
	if err := requireRole(r, salescommon.RoleFinance, salescommon.RoleSales); err != nil {
		return nil, err
	}
	var req salesmanager.InvoiceRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	inv, err := salesmanager.CreateInvoice(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(inv, "/v1/invoices/"+inv.InvoiceID.String()), nil
}

type invoiceDetail struct {
	Invoice *models.Invoice       `json:"invoice"`
	Lines   []*models.InvoiceLine `json:"lines"`
}

func getInvoice(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		return nil, err
	}
	inv, ierr := salesmanager.GetInvoice(r.Context(), id)
	if ierr != nil {
		return nil, ierr
	}
	lines, ierr := salesmanager.GetInvoiceLines(r.Context(), id)
	if ierr != nil {
		return nil, ierr
	}
	return okResponse(&invoiceDetail{Invoice: inv, Lines: lines}), nil
}

func listInvoices(r *http.Request) (*httpx.Response, error) {
	advertiserID, err := queryUUID(r, "advertiser_id")
	if err != nil {
		return nil, err
	}
	issuedFrom, err := queryDate(r, "issued_from")
	if err != nil {
		return nil, err
	}
	issuedTo, err := queryDate(r, "issued_to")
	if err != nil {
		return nil, err
	}
	status := r.URL.Query().Get("status")
	invoices, ierr := salesmanager.ListInvoices(r.Context(), status, advertiserID, issuedFrom, issuedTo)
	if ierr != nil {
		return nil, ierr
	}
	return okResponse(invoices), nil
}

// sweepOverdueInvoices moves sent invoices past their due date to overdue and
// returns the ones it flipped.
func sweepOverdueInvoices(r *http.Request) (*httpx.Response, error) {
	if err := requireRole(r, salescommon.RoleFinance); err != nil {
		return nil, err
	}
	flipped, err := salesmanager.MarkOverdueInvoices(r.Context(), time.Now())
	if err != nil {
		return nil, err
	}
	return okResponse(flipped), nil
}

// updateInvoiceStatus handles mark-sent, mark-paid and void. Voiding is
// restricted to finance.
func updateInvoiceStatus(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		return nil, err
	}
	var req statusUpdateRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if req.Status == models.InvoiceStatusVoid {
		if err := requireRole(r, salescommon.RoleFinance); err != nil {
			return nil, err
		}
	} else if err := requireRole(r, salescommon.RoleFinance, salescommon.RoleSales); err != nil {
		return nil, err
	}
	inv, ierr := salesmanager.UpdateInvoiceStatus(r.Context(), id, req.Status)
	if ierr != nil {
		return nil, ierr
	}
	return okResponse(inv), nil
}

func getInvoicePDF(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		return nil, err
	}
	doc, perr := salesmanager.RenderInvoicePDF(r.Context(), id)
	if perr != nil {
		return nil, perr
	}
	return &httpx.Response{
		StatusCode:  http.StatusOK,
		ContentType: "application/pdf",
		Raw:         doc,
	}, nil
}

func createPreBill(r *http.Request) (*httpx.Response, error) {
	if err := requireRole(r, salescommon.RoleFinance, salescommon.RoleSales); err != nil {
		return nil, err
	}
	var req salesmanager.PreBillRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	inv, err := salesmanager.CreatePreBill(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(inv, "/v1/invoices/"+inv.InvoiceID.String()), nil
}
