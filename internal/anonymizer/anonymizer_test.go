package anonymizer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_EndToEnd(t *testing.T) {
	input := strings.Join([]string{
		"0 @I1@ INDI",
		"1 NAME John /Smith/",
		"1 BIRT",
		"2 DATE 4 JUL 1776",
		"2 PLAC Boston, Massachusetts",
		"1 NAME John /Smith/",
	}, "\n") + "\n"

	want := strings.Join([]string{
		"0 @I1@ INDI",
		"1 NAME Person 1",
		"1 BIRT",
		"2 DATE 1 JAN 1900",
		"2 PLAC Place 1",
		"1 NAME Person 1",
	}, "\n") + "\n"

	a := New(Options{})
	var out bytes.Buffer
	require.NoError(t, a.Process(strings.NewReader(input), &out))
	assert.Equal(t, want, out.String())

	summary := a.Summary()
	assert.Equal(t, 1, summary.UniqueNames)
	assert.Equal(t, 1, summary.UniquePlaces)
	assert.Equal(t, 6, summary.Lines)
}

func TestProcess_LineCountPreserved(t *testing.T) {
	input := "0 HEAD\n\n1 NAME Jane /Doe/\n\n\n0 TRLR\n"
	a := New(Options{})
	var out bytes.Buffer
	require.NoError(t, a.Process(strings.NewReader(input), &out))

	inLines := strings.Split(input, "\n")
	outLines := strings.Split(out.String(), "\n")
	assert.Equal(t, len(inLines), len(outLines))
}

func TestProcess_BlankLinesPreserved(t *testing.T) {
	a := New(Options{})
	var out bytes.Buffer
	require.NoError(t, a.Process(strings.NewReader("0 HEAD\n\n0 TRLR\n"), &out))
	assert.Equal(t, "0 HEAD\n\n0 TRLR\n", out.String())
}

func TestProcess_EmptyInput(t *testing.T) {
	a := New(Options{})
	var out bytes.Buffer
	require.NoError(t, a.Process(strings.NewReader(""), &out))
	assert.Equal(t, "", out.String())

	summary := a.Summary()
	assert.Equal(t, 0, summary.UniqueNames)
	assert.Equal(t, 0, summary.UniquePlaces)
	assert.Equal(t, 0, summary.Lines)
}

func TestProcess_CRLFInput(t *testing.T) {
	a := New(Options{})
	var out bytes.Buffer
	require.NoError(t, a.Process(strings.NewReader("0 HEAD\r\n1 NAME X\r\n"), &out))
	assert.Equal(t, "0 HEAD\n1 NAME Person 1\n", out.String())
}

func TestAnonymizeLine_MonotonicNumbering(t *testing.T) {
	a := New(Options{})
	assert.Equal(t, "1 NAME Person 1", a.AnonymizeLine("1 NAME Alice /Jones/", 0))
	assert.Equal(t, "1 NAME Person 2", a.AnonymizeLine("1 NAME Bob /Jones/", 1))
	assert.Equal(t, "1 NAME Person 1", a.AnonymizeLine("1 NAME Alice /Jones/", 2))
	assert.Equal(t, "1 NAME Person 3", a.AnonymizeLine("1 NAME Carol /Ng/", 3))

	assert.Equal(t, "2 PLAC Place 1", a.AnonymizeLine("2 PLAC Paris, France", 4))
	assert.Equal(t, "2 PLAC Place 2", a.AnonymizeLine("2 PLAC Lyon, France", 5))
	assert.Equal(t, "2 PLAC Place 1", a.AnonymizeLine("2 PLAC Paris, France", 6))
}

func TestAnonymizeLine_Injective(t *testing.T) {
	a := New(Options{})
	names := []string{"A /A/", "B /B/", "C /C/", "D /D/"}
	seen := make(map[string]bool)
	for i, name := range names {
		out := a.AnonymizeLine("1 NAME "+name, i)
		assert.False(t, seen[out], "placeholder %q assigned twice", out)
		seen[out] = true
	}
}

func TestAnonymizeLine_KeepDates(t *testing.T) {
	a := New(Options{KeepDates: true})
	assert.Equal(t, "2 DATE 4 JUL 1776", a.AnonymizeLine("2 DATE 4 JUL 1776", 0))
	assert.Equal(t, "2 DATE ABT 1850", a.AnonymizeLine("2 DATE ABT 1850", 1))
}

func TestAnonymizeLine_KeepPlaces(t *testing.T) {
	a := New(Options{KeepPlaces: true})
	assert.Equal(t, "2 PLAC Boston, Massachusetts",
		a.AnonymizeLine("2 PLAC Boston, Massachusetts", 0))
	assert.Equal(t, 0, a.Summary().UniquePlaces, "kept places must not populate the map")
}

func TestAnonymizeLine_StructuralTagsPassThrough(t *testing.T) {
	a := New(Options{})
	cases := []string{
		"0 @I1@ INDI",
		"0 @F1@ FAM",
		"1 FAMC @F1@",
		"1 SEX M",
		"2 SOUR @S1@",
		"0 TRLR",
	}
	for _, line := range cases {
		assert.Equal(t, line, a.AnonymizeLine(line, 0))
	}
}

func TestAnonymizeLine_MalformedPassThrough(t *testing.T) {
	a := New(Options{})
	raw := "this line has no level"
	assert.Equal(t, raw, a.AnonymizeLine(raw, 10))
}

func TestAnonymizeLine_MalformedWarnsInsideWindow(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	a := New(Options{Logger: logger})

	a.AnonymizeLine("garbage header line", 2)
	assert.Contains(t, buf.String(), "doesn't match GEDCOM format")
	assert.Contains(t, buf.String(), "line=3")

	buf.Reset()
	a.AnonymizeLine("garbage much later", 5)
	assert.Empty(t, buf.String(), "no diagnostic past the window")
}

func TestAnonymizeLine_WarningPreviewTruncated(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	a := New(Options{Logger: logger})

	long := strings.Repeat("x", 80)
	a.AnonymizeLine(long, 0)
	assert.Contains(t, buf.String(), strings.Repeat("x", 50))
	assert.NotContains(t, buf.String(), strings.Repeat("x", 51))
}

func TestAnonymizeLine_BOMStripped(t *testing.T) {
	a := New(Options{})
	assert.Equal(t, "0 HEAD", a.AnonymizeLine("\uFEFF0 HEAD", 0))
}

func TestAnonymizer_IndependentInstances(t *testing.T) {
	a := New(Options{})
	b := New(Options{})
	a.AnonymizeLine("1 NAME First /A/", 0)
	assert.Equal(t, "1 NAME Person 1", b.AnonymizeLine("1 NAME Other /B/", 0),
		"each instance numbers from 1")
}

func TestAnonymizeLine_WithRules(t *testing.T) {
	rules := &RuleSet{
		RedactText:  []string{"SNOTE"},
		RedactValue: []string{"OCCU"},
		Preserve:    []string{"TITL"},
	}
	a := New(Options{Rules: rules})

	assert.Equal(t, "1 SNOTE [anonymized text]", a.AnonymizeLine("1 SNOTE shared note", 0))
	assert.Equal(t, "1 OCCU [anonymized]", a.AnonymizeLine("1 OCCU Blacksmith", 1))
	assert.Equal(t, "1 TITL My Family History", a.AnonymizeLine("1 TITL My Family History", 2))
}
