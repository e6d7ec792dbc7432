package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/document-management-api/internal/models"
)

func TestDashboardService_Summary(t *testing.T) {
	env := setupServiceTestEnv(t)
	fx := env.newUploadFixture(t)
	env.createFolder(t, "Archive", nil, fx.owner.ID)

	var uploaded []*models.Document
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		doc, err := env.documents.Upload(fx.input(name, "content of "+name))
		require.NoError(t, err)
		uploaded = append(uploaded, doc)
	}
	_, err := env.documents.SoftDelete(uploaded[0].ID, fx.owner.ID)
	require.NoError(t, err)

	// a row without a backing file counts as a document but not as a file
	require.NoError(t, env.db.Create(&models.Document{
		OriginalFileName: "metadata-only",
		StoredFileName:   "metadata-only",
		MimeType:         "text/plain",
		CreatedBy:        fx.owner.ID,
	}).Error)

	summary, err := env.dashboard.Summary()
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.DocumentCount)
	assert.Equal(t, int64(2), summary.FolderCount)
	assert.Equal(t, int64(2), summary.FileCount)

	require.Len(t, summary.LatestDocuments, 3)
	assert.Equal(t, "metadata-only", summary.LatestDocuments[0].OriginalFileName)
	latest := summary.LatestDocuments[1]
	assert.Equal(t, "three.txt", latest.OriginalFileName)
	require.NotNil(t, latest.FolderName)
	assert.Equal(t, "Projects", *latest.FolderName)
	require.NotNil(t, latest.DocumentTypeName)
	assert.Equal(t, "Manual", *latest.DocumentTypeName)
	require.NotNil(t, latest.ItJobTypeName)
	assert.Equal(t, "Network", *latest.ItJobTypeName)
	require.NotNil(t, latest.CreatedByUsername)
	assert.Equal(t, "alice", *latest.CreatedByUsername)

	require.Len(t, summary.LatestActivities, 4)
	assert.Equal(t, models.ActivityDelete, summary.LatestActivities[0].Action)
	require.NotNil(t, summary.LatestActivities[0].ActorUsername)
	assert.Equal(t, "alice", *summary.LatestActivities[0].ActorUsername)
}

func TestDashboardService_SummaryEmpty(t *testing.T) {
	env := setupServiceTestEnv(t)

	summary, err := env.dashboard.Summary()
	require.NoError(t, err)
	assert.Zero(t, summary.DocumentCount)
	assert.NotNil(t, summary.LatestDocuments)
	assert.NotNil(t, summary.LatestActivities)
}
