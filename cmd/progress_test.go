package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/conjugo/internal/mastery"
)

func TestExportProgress(t *testing.T) {
	ctx := context.Background()
	st := mastery.NewMemoryStore()
	_ = st.Set(ctx, mastery.Key("parler", "present", "tu"), 3)
	_ = st.Set(ctx, mastery.Key("avoir", "present", "j'"), 5)
	_ = st.Set(ctx, "theme", 1)

	var out bytes.Buffer
	n, err := exportProgress(ctx, st, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, map[string]string{
		"mastery_parler_present_tu": "3",
		"mastery_avoir_present_j'":  "5",
	}, got)
}

func TestImportProgress(t *testing.T) {
	ctx := context.Background()
	st := mastery.NewMemoryStore()

	input := `{
		"mastery_parler_present_tu": "3",
		"mastery_avoir_present_j'": 4,
		"mastery_etre_present_vous": "12",
		"mastery_finir_futur_nous": "2.9",
		"mastery_aller_present_je": "abc",
		"theme": "dark"
	}`
	imported, skipped, err := importProgress(ctx, st, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 4, imported)
	assert.Equal(t, 2, skipped)

	want := map[string]int{
		"mastery_parler_present_tu": 3,
		"mastery_avoir_present_j'":  4,
		"mastery_etre_present_vous": 5,
		"mastery_finir_futur_nous":  2,
	}
	for key, score := range want {
		got, ok, _ := st.Get(ctx, key)
		assert.True(t, ok, key)
		assert.Equal(t, score, got, key)
	}
	_, ok, _ := st.Get(ctx, "theme")
	assert.False(t, ok)
}

type closeErrWriter struct {
	bytes.Buffer
	err error
}

func (w *closeErrWriter) Close() error { return w.err }

func TestExportProgressTo_ReturnsCloseError(t *testing.T) {
	ctx := context.Background()
	st := mastery.NewMemoryStore()
	_ = st.Set(ctx, mastery.Key("parler", "present", "tu"), 3)

	w := &closeErrWriter{err: errors.New("disk full")}
	_, err := exportProgressTo(ctx, st, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	ok := &closeErrWriter{}
	n, err := exportProgressTo(ctx, st, ok)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, ok.String(), "mastery_parler_present_tu")
}

func TestParseRawScore_Numbers(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{`3`, 3, true},
		{`2.9`, 2, true},
		{`1e3`, 5, true},
		{`2e0`, 2, true},
		{`-4`, 0, true},
		{`1e400`, 5, true},
		{`"4"`, 4, true},
		{`true`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseRawScore(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestImportProgress_InvalidJSON(t *testing.T) {
	_, _, err := importProgress(context.Background(), mastery.NewMemoryStore(), strings.NewReader("[1, 2"))
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := mastery.NewMemoryStore()
	_ = src.Set(ctx, mastery.Key("parler", "present", "tu"), 2)

	var buf bytes.Buffer
	_, err := exportProgress(ctx, src, &buf)
	require.NoError(t, err)

	dst := mastery.NewMemoryStore()
	imported, _, err := importProgress(ctx, dst, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	got, _, _ := dst.Get(ctx, mastery.Key("parler", "present", "tu"))
	assert.Equal(t, 2, got)
}
