package serve_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/cmd/serve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(serve.Cmd)
}

func TestServeCommand_Metadata(t *testing.T) {
	assert.True(t, strings.HasPrefix(serve.Cmd.Use, "serve"))
	assert.Contains(t, serve.Cmd.Long, "/api/v1/report")
	require.NotNil(t, serve.Cmd.Flags().Lookup("addr"))
}

func TestServeCommand_FailsBeforeListening(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("ledger.csv", []byte("Datum\n20190101\n"), 0600))

	root.SharedFlags = root.CommonFlags{}
	root.Cmd.SetOut(&bytes.Buffer{})
	root.Cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "ledger.csv"})

	// no categories file: the run fails before the server starts
	err := root.Cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "categories file")
}
