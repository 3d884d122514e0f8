package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/prudhvinik1/odoosync/internal/config"
	"github.com/prudhvinik1/odoosync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOnly(t *testing.T) {
	entities, err := parseOnly("")
	require.NoError(t, err)
	assert.Equal(t, models.AllEntities, entities)

	entities, err = parseOnly("Invoices")
	require.NoError(t, err)
	assert.Equal(t, []models.EntityType{models.EntityInvoices}, entities)

	_, err = parseOnly("products")
	assert.Error(t, err)
}

func TestRootCommand_RejectsUnknownEntity(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--only", "products"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	assert.ErrorContains(t, err, "unknown entity type")
}

// TestRootCommand_MissingCredentials tests that the job stops before touching
// the store when Odoo settings are absent
func TestRootCommand_MissingCredentials(t *testing.T) {
	for _, key := range []string{"ODOO_URL", "ODOO_DB", "ODOO_USERNAME", "ODOO_PASSWORD"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", "sqlite:///"+dir+"/never.db")
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := NewRootCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	assert.ErrorIs(t, err, config.ErrMissingRemoteCredentials)
	assert.ErrorContains(t, err, "ODOO_URL")
	assert.NoFileExists(t, dir+"/never.db")
}
