package salesmanager

import (
	"encoding/json"
	"testing"

	"github.com/jackc/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

func TestBodyToJSONB(t *testing.T) {
	b, err := bodyToJSONB(json.RawMessage(`{"terms":"net 30","lines":[{"desc":"midroll","amount":500}]}`))
	require.Nil(t, err)
	assert.Equal(t, pgtype.Present, b.Status)

	// Empty body defaults to an empty document.
	b, err = bodyToJSONB(nil)
	require.Nil(t, err)
	assert.Equal(t, pgtype.Present, b.Status)
	assert.JSONEq(t, `{}`, string(b.Bytes))
}

func TestBodyToJSONBRejectsInvalidJSON(t *testing.T) {
	_, err := bodyToJSONB(json.RawMessage(`{"terms":`))
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrInvalidRequest))
}

func TestValidProposalStatus(t *testing.T) {
	for _, s := range []string{
		models.ProposalStatusDraft, models.ProposalStatusSent,
		models.ProposalStatusApproved, models.ProposalStatusRejected,
	} {
		assert.True(t, validProposalStatus(s), s)
	}
	assert.False(t, validProposalStatus("archived"))
	assert.False(t, validProposalStatus(""))
}

func TestVersionHistoryIsNewestFirst(t *testing.T) {
	versions := []*models.ProposalVersion{
		{VersionNum: 2},
		{VersionNum: 4},
		{VersionNum: 1},
		{VersionNum: 3},
	}
	sortVersionsNewestFirst(versions)
	nums := make([]int, 0, len(versions))
	for _, v := range versions {
		nums = append(nums, v.VersionNum)
	}
	assert.Equal(t, []int{4, 3, 2, 1}, nums)
}
