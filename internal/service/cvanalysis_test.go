package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/storage"
)

func TestMatchKeywords(t *testing.T) {
	cv := "Senior Go developer with Docker and Kubernetes. Shipped REST APIs in Go."
	jd := "We are looking for a Go developer with Docker, Kubernetes and Terraform experience."

	matched, missing, score := matchKeywords(cv, jd)

	assert.ElementsMatch(t, []string{"developer", "docker", "kubernetes"}, []string(matched))
	assert.ElementsMatch(t, []string{"terraform"}, []string(missing))
	assert.Equal(t, 75, score)
}

func TestMatchKeywordsKeepsSymbolTerms(t *testing.T) {
	matched, missing, _ := matchKeywords("Worked with C# and c++ daily.", "Requires C++ and C# programming.")

	assert.Contains(t, []string(matched), "c++")
	assert.Contains(t, []string(matched), "c#")
	assert.NotContains(t, []string(missing), "c++")
}

func TestMatchKeywordsEmptyDescription(t *testing.T) {
	matched, missing, score := matchKeywords("anything", "the and with for")

	assert.Empty(t, matched)
	assert.Empty(t, missing)
	assert.Equal(t, 0, score)
}

func TestExtractTextKeepsPrintableRuns(t *testing.T) {
	raw := append([]byte{0x00, 0x01}, []byte("Kubernetes")...)
	raw = append(raw, 0x02, 0x03)
	raw = append(raw, []byte("Docker")...)

	text := extractText(raw)
	assert.Contains(t, text, "Kubernetes")
	assert.Contains(t, text, "Docker")
}

func TestSuggestionsCapped(t *testing.T) {
	missing := model.StringList{"one", "two", "three", "four", "five", "six", "seven"}
	out := suggestions(missing)
	assert.Len(t, out, maxSuggestions)

	out = suggestions(nil)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "Great match")
}

func TestAnalyzePersistsResult(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewCVAnalysisService(env.cvAnalyses, env.appsRepo, store)

	cv := strings.NewReader("Go developer, Docker, PostgreSQL")
	analysis, err := svc.Analyze(user.ID, nil, "cv.txt", cv, "Go developer with Docker and Kafka")
	require.NoError(t, err)
	assert.Equal(t, "custom", analysis.APIUsed)
	assert.Contains(t, []string(analysis.MissingKeywords), "kafka")
	assert.Greater(t, analysis.ATSScore, 0)

	// Stored file is readable back through the storage layer.
	rc, err := store.Open("cv/" + user.ID + "/" + analysis.ID + ".txt")
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	got, err := svc.ByID(user.ID, analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis.ATSScore, got.ATSScore)

	_, err = svc.Analyze(user.ID, nil, "cv.txt", strings.NewReader("x"), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
