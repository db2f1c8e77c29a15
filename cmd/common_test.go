package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/verbico/internal"
)

func TestReadText(t *testing.T) {
	text, err := readText([]string{"Good", "morning"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "Good morning", text)

	text, err = readText(nil, strings.NewReader("Hola mundo\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hola mundo", text)
}

func TestLanguagesCommand_JSON(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"languages", "--format", "json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		languagesFormat = "table"
	})

	require.NoError(t, rootCmd.Execute())

	var langs []struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &langs))
	require.Len(t, langs, 15)
	assert.Equal(t, "en", langs[0].Code)
}

func TestBindConfigFlags_UsesRunningCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, detectCmd.Flags().Set("server", "http://detect.example"))
	t.Cleanup(func() {
		_ = detectCmd.Flags().Set("server", "")
		detectCmd.Flags().Lookup("server").Changed = false
	})

	require.NoError(t, bindConfigFlags(detectCmd.Flags()))
	assert.Equal(t, "http://detect.example", v.GetString("client.base_url"))
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"table", "json", "YAML", "toml"} {
		assert.NoError(t, checkFormat(f), f)
	}
	assert.Error(t, checkFormat("csv"))
}

func TestSwapRequest(t *testing.T) {
	text, source, target := swapRequest(internal.Translation{
		SourceText:     "Good morning",
		TranslatedText: "Buenos días",
		SourceLanguage: "en",
		TargetLanguage: "es",
	})
	assert.Equal(t, "Buenos días", text)
	assert.Equal(t, "es", source)
	assert.Equal(t, "en", target)
}
