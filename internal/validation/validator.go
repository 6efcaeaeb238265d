package validation

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"quizcraft/internal/domain"
)

const (
	MsgUnsupportedFile = "Only .txt or .md files are supported."
	MsgFileTooLarge    = "Uploaded file is too large."
	MsgEmptyText       = "Please add some text to generate a quiz."
	MsgTextTooLong     = "Text is too long. Please shorten it and try again."
)

var allowedUploadExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Limits bounds the size of generation input.
type Limits struct {
	MaxUploadBytes int64
	MaxInputChars  int
}

// Validator provides request validation functionality
type Validator struct {
	limits Limits
}

// NewValidator creates a new validator instance
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// MaxUploadBytes is the largest accepted upload; 0 means unbounded.
func (v *Validator) MaxUploadBytes() int64 {
	return v.limits.MaxUploadBytes
}

// ValidateUpload checks the extension, then the size, of an uploaded source file.
func (v *Validator) ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExtensions[ext] {
		return domain.NewValidationError(MsgUnsupportedFile).WithContext("filename", filename)
	}
	if v.limits.MaxUploadBytes > 0 && size > v.limits.MaxUploadBytes {
		return domain.NewValidationError(MsgFileTooLarge).WithContext("size", size)
	}
	return nil
}

// ValidateText checks the effective source text. Length is counted in characters.
func (v *Validator) ValidateText(text string) error {
	if text == "" {
		return domain.NewValidationError(MsgEmptyText)
	}
	if v.limits.MaxInputChars > 0 && utf8.RuneCountInString(text) > v.limits.MaxInputChars {
		return domain.NewValidationError(MsgTextTooLong)
	}
	return nil
}

// DecodeUpload reads file content as UTF-8, dropping invalid bytes.
func DecodeUpload(content []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(content), ""))
}

// NormalizeTitle trims the title and cuts it to the maximum length.
func NormalizeTitle(title string) string {
	return domain.TruncateTitle(strings.TrimSpace(title))
}

// NormalizeDifficulty falls back to the default for unknown values.
func NormalizeDifficulty(difficulty string) string {
	for _, d := range domain.Difficulties {
		if difficulty == d {
			return difficulty
		}
	}
	return domain.DefaultDifficulty
}

// NormalizeLanguage falls back to the default for unknown values.
func NormalizeLanguage(language string) string {
	for _, l := range domain.Languages {
		if language == l {
			return language
		}
	}
	return domain.DefaultLanguage
}

// NormalizeQuestionCount parses a form value; non-integers and counts
// outside the allowed set become the default.
func NormalizeQuestionCount(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return domain.DefaultQuestionCount
	}
	return NormalizeQuestionCountInt(n)
}

func NormalizeQuestionCountInt(n int) int {
	for _, c := range domain.QuestionCounts {
		if n == c {
			return n
		}
	}
	return domain.DefaultQuestionCount
}
