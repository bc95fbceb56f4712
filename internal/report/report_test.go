package report

// report_test.go — Tests for annotation mapping and publishing.

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelcheck/internal/check"
	"modelcheck/internal/node"
	"modelcheck/internal/ruleset"
)

func obj(id, typ string) *node.Object {
	return node.New(id, typ)
}

// fakeContext records calls for assertions.
type fakeContext struct {
	infos     []Annotation
	results   []Annotation
	succeeded bool
	failed    bool
	finalMsg  string
	viewSet   bool
}

func (f *fakeContext) AttachInfo(category string, objectIDs []string, message string) error {
	f.infos = append(f.infos, Annotation{Category: category, ObjectIDs: objectIDs, Message: message})
	return nil
}

func (f *fakeContext) AttachResult(category string, objectIDs []string, message string, severity ruleset.Severity) error {
	f.results = append(f.results, Annotation{Category: category, ObjectIDs: objectIDs, Message: message, Severity: severity})
	return nil
}

func (f *fakeContext) MarkRunSuccess(message string) error {
	f.succeeded = true
	f.finalMsg = message
	return nil
}

func (f *fakeContext) MarkRunFailed(message string) error {
	f.failed = true
	f.finalMsg = message
	return nil
}

func (f *fakeContext) SetContextView() error {
	f.viewSet = true
	return nil
}

// ---------------------------------------------------------------------------
// Annotations
// ---------------------------------------------------------------------------

func TestAnnotationsCategoriesAndMessages(t *testing.T) {
	res := check.RuleResult{
		RuleID:   "3",
		Message:  "Walls must be tall enough",
		Severity: ruleset.SeverityWarning,
		Passed:   []*node.Object{obj("a", "Wall")},
		Failed:   []*node.Object{obj("b", "Wall")},
	}

	anns := Annotations(res)
	require.Len(t, anns, 2)

	pass := anns[0]
	assert.Equal(t, "Rule 3 Success", pass.Category)
	assert.Equal(t, "Walls must be tall enough - Passed", pass.Message)
	assert.True(t, pass.Passed)
	assert.Equal(t, []string{"a"}, pass.ObjectIDs)

	fail := anns[1]
	assert.Equal(t, "Rule 3 Results", fail.Category)
	assert.Equal(t, "Walls must be tall enough - Failed", fail.Message)
	assert.Equal(t, ruleset.SeverityWarning, fail.Severity)
	assert.Equal(t, []string{"b"}, fail.ObjectIDs)
}

func TestAnnotationsSkipEmptyPartitionsAndBlankIDs(t *testing.T) {
	res := check.RuleResult{
		RuleID:  "1",
		Message: "m",
		Passed:  []*node.Object{obj("", "Wall")},
	}
	// The only passing object has no identifier: nothing to attach.
	assert.Empty(t, Annotations(res))
}

// ---------------------------------------------------------------------------
// Publish
// ---------------------------------------------------------------------------

func TestPublishSuccessOnWarningsOnly(t *testing.T) {
	run := &check.RunResult{Results: []check.RuleResult{
		{
			RuleID:   "1",
			Message:  "m",
			Severity: ruleset.SeverityWarning,
			Failed:   []*node.Object{obj("a", "Wall")},
		},
	}}

	ctx := &fakeContext{}
	require.NoError(t, Publish(ctx, run))

	// Warnings attach as results but do not fail the run.
	require.Len(t, ctx.results, 1)
	assert.True(t, ctx.succeeded)
	assert.False(t, ctx.failed)
	assert.True(t, ctx.viewSet)
}

func TestPublishFailsOnErrorSeverity(t *testing.T) {
	run := &check.RunResult{Results: []check.RuleResult{
		{
			RuleID:   "1",
			Message:  "m",
			Severity: ruleset.SeverityError,
			Passed:   []*node.Object{obj("a", "Wall")},
			Failed:   []*node.Object{obj("b", "Wall")},
		},
	}}

	ctx := &fakeContext{}
	require.NoError(t, Publish(ctx, run))

	require.Len(t, ctx.infos, 1)
	require.Len(t, ctx.results, 1)
	assert.True(t, ctx.failed)
	assert.Contains(t, ctx.finalMsg, "1 rule(s) failed")
	assert.True(t, ctx.viewSet)
}

// ---------------------------------------------------------------------------
// Summary
// ---------------------------------------------------------------------------

func TestNewSummaryCounts(t *testing.T) {
	run := &check.RunResult{
		Results: []check.RuleResult{
			{
				RuleID: "1",
				Passed: []*node.Object{obj("a", "Wall"), obj("b", "Wall")},
				Failed: []*node.Object{obj("c", "Wall")},
			},
		},
		Skipped: []check.SkippedRule{{RuleID: "2", Reason: "disabled in settings"}},
	}

	s := NewSummary(5, run, time.Now().Add(-time.Second))

	assert.NotEmpty(t, s.RunID)
	assert.Equal(t, 5, s.Objects)
	assert.Equal(t, 1, s.Rules)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 2, s.Passed)
	assert.Equal(t, 1, s.Failed)
}
