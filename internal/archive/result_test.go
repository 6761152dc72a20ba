package archive

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	results := []AccountResult{
		NewSuccessResult("A", "A/Calendar.xml", ParseStats{Kept: 3, Ignored: 1}),
		NewSuccessResult("B", "B/Calendar.xml", ParseStats{Kept: 2, Reserved: 1}),
		NewSkippedResult("C", "C/Calendar.xml"),
		NewExcludedResult("D"),
		NewErrorResult("E", "E/Calendar.xml", errors.New("boom")),
	}

	s := Summarize(results)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Success)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Excluded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, ParseStats{Kept: 5, Reserved: 1, Ignored: 1}, s.Events)
}

func TestFormatResults(t *testing.T) {
	out := FormatResults([]AccountResult{
		NewSkippedResult("C", "C/Calendar.xml"),
		NewErrorResult("E", "E/Calendar.xml", errors.New("boom")),
	})

	var parsed Summary
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, 2, parsed.Total)
	assert.Equal(t, 1, parsed.Failed)
	require.Len(t, parsed.Accounts, 2)
	assert.Equal(t, "no calendar data for this account", parsed.Accounts[0].Message)
	assert.Equal(t, "boom", parsed.Accounts[1].Error)
}

func TestFirstError(t *testing.T) {
	assert.NoError(t, FirstError([]AccountResult{NewExcludedResult("A")}))

	cause := errors.New("bad timestamp")
	err := FirstError([]AccountResult{
		NewSuccessResult("A", "", ParseStats{}),
		NewErrorResult("B", "B/Calendar.xml", cause),
	})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "account B")
}
