package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
)

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
func idPtr(v uint64) *uint64  { return &v }

func TestTaxonomyService_CreateAndList(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.docTypes.Create(CreateTaxonomyInput{Name: " Manual ", CreatedBy: 1})
	require.NoError(t, err)
	_, err = env.docTypes.Create(CreateTaxonomyInput{Name: "Contract"})
	require.NoError(t, err)
	_, err = env.docTypes.Create(CreateTaxonomyInput{Name: "Archive", IsActive: boolPtr(false)})
	require.NoError(t, err)

	active, err := env.docTypes.List(false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Contract", active[0].Name)
	assert.Equal(t, "Manual", active[1].Name)

	all, err := env.docTypes.List(true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Archive", all[0].Name)
	assert.False(t, all[0].IsActive)

	// the two taxonomies are independent tables
	jobs, err := env.jobTypes.List(true)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestTaxonomyService_CreateValidation(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.jobTypes.Create(CreateTaxonomyInput{Name: "   "})
	assert.True(t, errors.Is(err, apierrors.ErrKindInvalidInput))
}

func TestTaxonomyService_UniquenessIgnoresDeleted(t *testing.T) {
	env := setupServiceTestEnv(t)

	first, err := env.jobTypes.Create(CreateTaxonomyInput{Name: "Network"})
	require.NoError(t, err)

	_, err = env.jobTypes.Create(CreateTaxonomyInput{Name: "Network"})
	assert.True(t, errors.Is(err, apierrors.ErrKindConflict))

	// names are compared case-sensitively
	_, err = env.jobTypes.Create(CreateTaxonomyInput{Name: "network"})
	require.NoError(t, err)

	require.NoError(t, env.jobTypes.Delete(first.ID))

	again, err := env.jobTypes.Create(CreateTaxonomyInput{Name: "Network"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, again.ID)
}

func TestTaxonomyService_Update(t *testing.T) {
	env := setupServiceTestEnv(t)

	invoice, err := env.docTypes.Create(CreateTaxonomyInput{Name: "Invoice"})
	require.NoError(t, err)
	_, err = env.docTypes.Create(CreateTaxonomyInput{Name: "Receipt"})
	require.NoError(t, err)

	t.Run("rename and deactivate", func(t *testing.T) {
		entry, err := env.docTypes.Update(invoice.ID, UpdateTaxonomyInput{
			Name:      strPtr("Invoices"),
			IsActive:  boolPtr(false),
			UpdatedBy: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, "Invoices", entry.Name)
		assert.False(t, entry.IsActive)
		require.NotNil(t, entry.UpdatedBy)
		assert.Equal(t, uint64(3), *entry.UpdatedBy)
	})

	t.Run("keeping the same name is not a conflict", func(t *testing.T) {
		_, err := env.docTypes.Update(invoice.ID, UpdateTaxonomyInput{Name: strPtr("Invoices")})
		require.NoError(t, err)
	})

	t.Run("empty update", func(t *testing.T) {
		_, err := env.docTypes.Update(invoice.ID, UpdateTaxonomyInput{})
		assert.True(t, errors.Is(err, ErrTaxonomyEmptyUpdate))
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := env.docTypes.Update(invoice.ID, UpdateTaxonomyInput{Name: strPtr("  ")})
		assert.True(t, errors.Is(err, apierrors.ErrKindInvalidInput))
	})

	t.Run("rename collision", func(t *testing.T) {
		_, err := env.docTypes.Update(invoice.ID, UpdateTaxonomyInput{Name: strPtr("Receipt")})
		assert.True(t, errors.Is(err, apierrors.ErrKindConflict))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := env.docTypes.Update(9999, UpdateTaxonomyInput{IsActive: boolPtr(true)})
		assert.True(t, errors.Is(err, apierrors.ErrKindNotFound))
	})
}

func TestTaxonomyService_Delete(t *testing.T) {
	env := setupServiceTestEnv(t)

	entry, err := env.docTypes.Create(CreateTaxonomyInput{Name: "Memo"})
	require.NoError(t, err)

	require.NoError(t, env.docTypes.Delete(entry.ID))

	err = env.docTypes.Delete(entry.ID)
	assert.True(t, errors.Is(err, apierrors.ErrKindNotFound))

	_, err = env.docTypes.Update(entry.ID, UpdateTaxonomyInput{Name: strPtr("Memo 2")})
	assert.True(t, errors.Is(err, apierrors.ErrKindNotFound))

	entries, err := env.docTypes.List(true)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
