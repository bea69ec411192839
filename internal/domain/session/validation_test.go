package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSubmission(t *testing.T) {
	require.NoError(t, ValidateSubmission(Submission{Name: "Ana", Buddy: "Ben", Task: "refactor"}))

	err := ValidateSubmission(Submission{Name: "Ana", Buddy: "", Task: "\n\t "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "buddy")
	require.Contains(t, err.Error(), "task")
	require.NotContains(t, err.Error(), "name")
}

func TestSubmissionNormalize(t *testing.T) {
	sub := Submission{Name: "  Ana", Buddy: "Ben  ", Task: "  indented notes"}.Normalize()
	require.Equal(t, "Ana", sub.Name)
	require.Equal(t, "Ben", sub.Buddy)
	require.Equal(t, "  indented notes", sub.Task)
}
