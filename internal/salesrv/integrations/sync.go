package integrations

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

const syncAttempts = 3

var syncBackoff = 2 * time.Second

// SyncResult summarizes one sync run.
type SyncResult struct {
	Provider string `json:"provider"`
	Synced   int    `json:"synced"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// RunSync executes the provider's sync and records the outcome on the
// integration row.
func RunSync(ctx context.Context, providerName string) (*SyncResult, apperrors.Error) {
	in, err := GetIntegration(ctx, providerName)
	if err != nil {
		return nil, err
	}
	if !in.Enabled {
		return nil, ErrDisabled
	}

	if err := db.DB(ctx).UpdateIntegrationSyncState(ctx, in.IntegrationID, models.SyncStatusRunning, "", time.Now()); err != nil {
		return nil, err
	}

	var synced int
	var syncErr apperrors.Error
	config := gjson.ParseBytes(in.Config.Bytes)

	switch providerName {
	case ProviderMegaphone:
		synced, syncErr = syncMegaphone(ctx, config)
	case ProviderYouTube:
		synced, syncErr = syncYouTube(ctx, config)
	case ProviderQuickBooks:
		synced, syncErr = syncQuickBooks(ctx, config)
	default:
		syncErr = ErrUnknownProvider
	}

	result := &SyncResult{Provider: providerName, Synced: synced}
	if syncErr != nil {
		result.Status = models.SyncStatusFailed
		result.Error = syncErr.Error()
		_ = db.DB(ctx).UpdateIntegrationSyncState(ctx, in.IntegrationID, models.SyncStatusFailed, syncErr.Error(), time.Now())
		return result, syncErr
	}
	result.Status = models.SyncStatusOK
	if err := db.DB(ctx).UpdateIntegrationSyncState(ctx, in.IntegrationID, models.SyncStatusOK, "", time.Now()); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("provider", providerName).Int("synced", synced).Msg("integration sync finished")
	return result, nil
}

// fetchWithRetry performs an authenticated GET, retrying on transport errors
// and 5xx responses.
func fetchWithRetry(ctx context.Context, url, authHeader string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Authorization", authHeader)
			rsp, err := httpClient.Do(req)
			if err != nil {
				return err
			}
			defer rsp.Body.Close()
			if rsp.StatusCode >= 500 {
				return ErrSyncFailed.Msg("upstream returned " + rsp.Status)
			}
			if rsp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(ErrSyncFailed.Msg("upstream returned " + rsp.Status))
			}
			body, err = io.ReadAll(rsp.Body)
			return err
		},
		retry.Attempts(syncAttempts),
		retry.Delay(syncBackoff),
		retry.Context(ctx),
	)
	return body, err
}

// syncMegaphone pulls per-episode download counts. The response carries an
// episodes array with an external title/number pair and a downloads total;
// rows are matched to local episodes by show and episode number.
func syncMegaphone(ctx context.Context, config gjson.Result) (int, apperrors.Error) {
	endpoint := config.Get("endpoint").String()
	apiKey := config.Get("api_key").String()

	shows, err := db.DB(ctx).ListShows(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, show := range shows {
		if !show.IsActive {
			continue
		}
		body, fetchErr := fetchWithRetry(ctx, endpoint+"/podcasts/"+show.ShowID.String()+"/episodes", "Token token="+apiKey)
		if fetchErr != nil {
			return synced, ErrSyncFailed.Err(fetchErr)
		}
		episodes, err := db.DB(ctx).ListEpisodesByShow(ctx, show.ShowID)
		if err != nil {
			return synced, err
		}
		byNumber := make(map[int64]*models.Episode, len(episodes))
		for _, ep := range episodes {
			byNumber[int64(ep.EpisodeNumber)] = ep
		}
		for _, row := range gjson.GetBytes(body, "episodes").Array() {
			number := row.Get("number").Int()
			downloads := row.Get("downloads.total").Int()
			ep, ok := byNumber[number]
			if !ok {
				continue
			}
			if downloads == ep.Downloads {
				continue
			}
			if err := db.DB(ctx).UpdateEpisodeDownloads(ctx, ep.EpisodeID, downloads); err != nil {
				return synced, err
			}
			synced++
		}
	}
	return synced, nil
}

// syncYouTube refreshes view counts for episodes that have a matching video
// on the configured channel. Views are folded into the episode's downloads
// figure, the number the KPI math consumes.
func syncYouTube(ctx context.Context, config gjson.Result) (int, apperrors.Error) {
	endpoint := config.Get("endpoint").String()
	if endpoint == "" {
		endpoint = "https://www.googleapis.com/youtube/v3"
	}
	apiKey := config.Get("api_key").String()
	channelID := config.Get("channel_id").String()

	body, fetchErr := fetchWithRetry(ctx,
		endpoint+"/search?part=id&channelId="+channelID+"&type=video&key="+apiKey,
		"Bearer "+apiKey)
	if fetchErr != nil {
		return 0, ErrSyncFailed.Err(fetchErr)
	}

	synced := 0
	for _, item := range gjson.GetBytes(body, "items").Array() {
		videoID := item.Get("id.videoId").String()
		if videoID == "" {
			continue
		}
		stats, fetchErr := fetchWithRetry(ctx,
			endpoint+"/videos?part=statistics,snippet&id="+videoID+"&key="+apiKey,
			"Bearer "+apiKey)
		if fetchErr != nil {
			return synced, ErrSyncFailed.Err(fetchErr)
		}
		views := gjson.GetBytes(stats, "items.0.statistics.viewCount").Int()
		episodeTag := gjson.GetBytes(stats, "items.0.snippet.episodeId").String()
		if episodeTag == "" || views == 0 {
			continue
		}
		episodeID, parseErr := uuid.Parse(episodeTag)
		if parseErr != nil {
			continue
		}
		ep, err := db.DB(ctx).GetEpisode(ctx, episodeID)
		if err != nil {
			continue
		}
		if err := db.DB(ctx).UpdateEpisodeDownloads(ctx, ep.EpisodeID, ep.Downloads+views); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}

// syncQuickBooks pushes the org's sent invoices to the accounting system.
// Request bodies are assembled field by field so the export format stays
// explicit.
func syncQuickBooks(ctx context.Context, config gjson.Result) (int, apperrors.Error) {
	endpoint := config.Get("endpoint").String()
	if endpoint == "" {
		endpoint = "https://quickbooks.api.intuit.com/v3"
	}
	accessToken := config.Get("access_token").String()
	realmID := config.Get("realm_id").String()

	invoices, err := db.DB(ctx).ListInvoices(ctx, models.InvoiceStatusSent, uuid.Nil, time.Time{}, time.Time{})
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, inv := range invoices {
		lines, err := db.DB(ctx).GetInvoiceLines(ctx, inv.InvoiceID)
		if err != nil {
			return synced, err
		}
		payload := quickBooksInvoicePayload(inv, lines)

		if postErr := postWithRetry(ctx, endpoint+"/company/"+realmID+"/invoice", "Bearer "+accessToken, payload); postErr != nil {
			return synced, ErrSyncFailed.Err(postErr)
		}
		synced++
	}
	return synced, nil
}

// quickBooksInvoicePayload normalizes an invoice into the export document.
func quickBooksInvoicePayload(inv *models.Invoice, lines []*models.InvoiceLine) []byte {
	payload := []byte(`{}`)
	payload, _ = sjson.SetBytes(payload, "DocNumber", inv.Number)
	payload, _ = sjson.SetBytes(payload, "TotalAmt", inv.Amount.InexactFloat64())
	payload, _ = sjson.SetBytes(payload, "TxnDate", inv.IssueDate.Format("2006-01-02"))
	payload, _ = sjson.SetBytes(payload, "DueDate", inv.DueDate.Format("2006-01-02"))
	payload, _ = sjson.SetBytes(payload, "PrivateNote", "podcastflow:"+inv.InvoiceID.String())
	for i, line := range lines {
		prefix := "Line." + strconv.Itoa(i)
		payload, _ = sjson.SetBytes(payload, prefix+".Description", line.Description)
		payload, _ = sjson.SetBytes(payload, prefix+".Amount", line.Amount.InexactFloat64())
		payload, _ = sjson.SetBytes(payload, prefix+".DetailType", "SalesItemLineDetail")
		payload, _ = sjson.SetBytes(payload, prefix+".SalesItemLineDetail.Qty", line.Quantity)
	}
	return payload
}

func postWithRetry(ctx context.Context, url, authHeader string, payload []byte) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Authorization", authHeader)
			req.Header.Set("Content-Type", "application/json")
			rsp, err := httpClient.Do(req)
			if err != nil {
				return err
			}
			defer rsp.Body.Close()
			io.Copy(io.Discard, rsp.Body)
			if rsp.StatusCode >= 500 {
				return ErrSyncFailed.Msg("upstream returned " + rsp.Status)
			}
			if rsp.StatusCode >= 300 {
				return retry.Unrecoverable(ErrSyncFailed.Msg("upstream returned " + rsp.Status))
			}
			return nil
		},
		retry.Attempts(syncAttempts),
		retry.Delay(syncBackoff),
		retry.Context(ctx),
	)
}
