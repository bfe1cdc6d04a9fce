package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkamau/pesaflow/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIngestNoMessages(t *testing.T) {
	cmd := ingestCmd()
	cmd.SetContext(context.Background())
	cmd.SetIn(strings.NewReader("\n  \n"))

	err := runIngest(cmd, []string{"-"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoMessages)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestRunVelocityEmptyHistory(t *testing.T) {
	viper.Set("database.path", filepath.Join(t.TempDir(), "pesaflow.db"))
	t.Cleanup(func() { viper.Set("database.path", "") })

	cmd := velocityCmd()
	cmd.SetContext(context.Background())

	err := runVelocity(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyHistory)
}
