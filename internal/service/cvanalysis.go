package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/storage"
)

const maxSuggestions = 5

type CVAnalysisService struct {
	cvAnalysisRepository  repository.CVAnalysisRepository
	applicationRepository repository.ApplicationRepository
	storage               storage.Storage
}

func NewCVAnalysisService(
	cvAnalysisRepository repository.CVAnalysisRepository,
	applicationRepository repository.ApplicationRepository,
	store storage.Storage,
) *CVAnalysisService {
	return &CVAnalysisService{
		cvAnalysisRepository:  cvAnalysisRepository,
		applicationRepository: applicationRepository,
		storage:               store,
	}
}

// Analyze stores the uploaded CV, matches it against the job description
// with the local keyword matcher, and persists the result.
func (s *CVAnalysisService) Analyze(userID string, applicationID *string, filename string, cv io.Reader, jobDescription string) (*model.CVAnalysis, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job_description is required", ErrInvalidInput)
	}

	if applicationID != nil {
		if _, err := s.applicationRepository.ByID(userID, *applicationID); err != nil {
			if errors.Is(err, repository.ErrApplicationNotFound) {
				return nil, fmt.Errorf("%w: application", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to check application: %w", err)
		}
	}

	content, err := io.ReadAll(cv)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV: %w", err)
	}

	id := uuid.NewString()
	storedPath := fmt.Sprintf("cv/%s/%s%s", userID, id, strings.ToLower(filepath.Ext(filename)))
	if err := s.storage.Save(storedPath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to store CV: %w", err)
	}

	cvText := extractText(content)
	matched, missing, score := matchKeywords(cvText, jobDescription)

	analysis := &model.CVAnalysis{
		ID:              id,
		UserID:          userID,
		ApplicationID:   applicationID,
		CVFilename:      &filename,
		JobDescription:  jobDescription,
		ATSScore:        score,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Suggestions:     suggestions(missing),
		APIUsed:         "custom",
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.cvAnalysisRepository.Create(analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return analysis, nil
}

func (s *CVAnalysisService) ByID(userID, analysisID string) (*model.CVAnalysis, error) {
	analysis, err := s.cvAnalysisRepository.ByID(userID, analysisID)
	if err != nil {
		if errors.Is(err, repository.ErrCVAnalysisNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return analysis, nil
}

func (s *CVAnalysisService) List(userID string, page, perPage int) ([]*model.CVAnalysis, int, error) {
	return s.cvAnalysisRepository.List(userID, page, perPage)
}

func (s *CVAnalysisService) Delete(userID, analysisID string) error {
	err := s.cvAnalysisRepository.Delete(userID, analysisID)
	if errors.Is(err, repository.ErrCVAnalysisNotFound) {
		return ErrNotFound
	}
	return err
}

// extractText pulls readable text out of the uploaded bytes. Plain text
// passes through; for binary formats (PDF, DOCX) it keeps printable runs,
// which is enough for keyword matching without a format parser.
func extractText(content []byte) string {
	var b strings.Builder
	run := 0
	for _, c := range string(content) {
		if unicode.IsPrint(c) || c == '\n' || c == '\t' {
			b.WriteRune(c)
			run++
		} else {
			if run > 0 {
				b.WriteRune(' ')
			}
			run = 0
		}
	}
	return b.String()
}

// stopwords are skipped when extracting keywords from a job description.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"or": true, "our": true, "that": true, "the": true, "to": true, "was": true,
	"we": true, "will": true, "with": true, "you": true, "your": true,
	"this": true, "they": true, "their": true, "them": true, "who": true,
	"what": true, "when": true, "where": true, "which": true, "would": true,
	"about": true, "into": true, "over": true, "after": true, "more": true,
	"all": true, "also": true, "can": true, "not": true, "but": true,
	"if": true, "than": true, "then": true, "there": true, "these": true,
	"should": true, "must": true, "may": true, "any": true, "each": true,
	"able": true, "such": true, "other": true, "years": true, "year": true,
	"experience": true, "work": true, "working": true, "team": true,
	"role": true, "job": true, "looking": true, "ideal": true, "candidate": true,
	"strong": true, "skills": true, "knowledge": true, "plus": true,
	"required": true, "requirements": true, "preferred": true,
	"responsibilities": true, "including": true, "etc": true,
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}

// matchKeywords extracts the significant keywords from the job description
// and splits them into matched and missing against the CV text. The score
// is the matched percentage, clamped to [0, 100].
func matchKeywords(cvText, jobDescription string) (matched, missing model.StringList, score int) {
	cvWords := map[string]bool{}
	for _, w := range tokenize(cvText) {
		cvWords[w] = true
	}

	seen := map[string]bool{}
	var keywords []string
	for _, w := range tokenize(jobDescription) {
		if len(w) < 3 && !strings.ContainsAny(w, "+#") {
			continue
		}
		if stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)

	matched = model.StringList{}
	missing = model.StringList{}
	for _, kw := range keywords {
		if cvWords[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	if len(keywords) == 0 {
		return matched, missing, 0
	}
	score = len(matched) * 100 / len(keywords)
	if score > 100 {
		score = 100
	}
	return matched, missing, score
}

func suggestions(missing model.StringList) model.StringList {
	out := model.StringList{}
	for i, kw := range missing {
		if i == maxSuggestions {
			break
		}
		out = append(out, fmt.Sprintf("Consider mentioning %q if it reflects your experience.", kw))
	}
	if len(missing) == 0 {
		out = append(out, "Great match. Your CV covers the key terms of this job description.")
	}
	return out
}
